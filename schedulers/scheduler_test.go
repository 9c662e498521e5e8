package schedulers

import (
	"errors"
	"sync"
	"time"

	"github.com/AnatoleLucet/rx/disposable"
)

type guard struct {
	disposable.Flag

	mu     sync.Mutex
	errors []error
}

func (g *guard) OnError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errors = append(g.errors, err)
}

func (g *guard) errs() []error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]error(nil), g.errors...)
}

// times returns a Schedulable that runs n times, calling fn each time.
func times(n int, fn func()) Schedulable {
	return func() (time.Duration, bool) {
		fn()
		n--
		return 0, n > 0
	}
}

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int
	values   map[string]float64
	timings  map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: map[string]int{},
		values:   map[string]float64{},
		timings:  map[string]int{},
	}
}

func (m *recordingMetrics) RecordDuration(metric string, _ time.Duration, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[metric]++
}

func (m *recordingMetrics) IncrementCounter(metric string, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[metric]++
}

func (m *recordingMetrics) RecordValue(metric string, value float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[metric] = value
}

func (m *recordingMetrics) counter(metric string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[metric]
}

var errBoom = errors.New("boom")

// Package oteladapters connects scheduler instrumentation to OpenTelemetry.
package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AnatoleLucet/rx/logging"
	"github.com/AnatoleLucet/rx/schedulers"
)

// MetricsCollector implements schedulers.MetricsCollector with OpenTelemetry
// instruments, created on first use:
//   - RecordDuration -> Float64Histogram, in seconds
//   - IncrementCounter -> Int64Counter
//   - RecordValue -> Float64Gauge
//
// It is safe for concurrent use by workers on different goroutines.
type MetricsCollector struct {
	meter metric.Meter

	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector returns a collector creating its instruments on meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *MetricsCollector) RecordDuration(name string, duration time.Duration, labels map[string]string) {
	if histogram := m.histogram(name); histogram != nil {
		histogram.Record(context.Background(), duration.Seconds(), attributes(labels))
	}
}

func (m *MetricsCollector) IncrementCounter(name string, labels map[string]string) {
	if counter := m.counter(name); counter != nil {
		counter.Add(context.Background(), 1, attributes(labels))
	}
}

func (m *MetricsCollector) RecordValue(name string, value float64, labels map[string]string) {
	if gauge := m.gauge(name); gauge != nil {
		gauge.Record(context.Background(), value, attributes(labels))
	}
}

func attributes(labels map[string]string) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}
	return metric.WithAttributes(attrs...)
}

func (m *MetricsCollector) histogram(name string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, ok := m.histograms[name]; ok {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(name,
		metric.WithDescription("rx scheduler task duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logging.Default().Warn("creating histogram failed", "metric", name, "error", err)
		return nil
	}

	m.histograms[name] = histogram
	return histogram
}

func (m *MetricsCollector) counter(name string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, ok := m.counters[name]; ok {
		return counter
	}

	counter, err := m.meter.Int64Counter(name, metric.WithDescription("rx scheduler task counter"))
	if err != nil {
		logging.Default().Warn("creating counter failed", "metric", name, "error", err)
		return nil
	}

	m.counters[name] = counter
	return counter
}

func (m *MetricsCollector) gauge(name string) metric.Float64Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, ok := m.gauges[name]; ok {
		return gauge
	}

	gauge, err := m.meter.Float64Gauge(name, metric.WithDescription("rx scheduler current value"))
	if err != nil {
		logging.Default().Warn("creating gauge failed", "metric", name, "error", err)
		return nil
	}

	m.gauges[name] = gauge
	return gauge
}

var _ schedulers.MetricsCollector = (*MetricsCollector)(nil)

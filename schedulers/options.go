package schedulers

import "github.com/AnatoleLucet/rx/logging"

type config struct {
	name    string
	logger  logging.Logger
	metrics MetricsCollector
}

// Option configures a scheduler.
type Option func(*config)

func newConfig(name string, opts []Option) config {
	c := config{name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithName sets the "scheduler" label used in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger. Without it logging.Default() is used.
func WithLogger(logger logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector. Without it nothing is recorded.
func WithMetrics(metrics MetricsCollector) Option {
	return func(c *config) {
		c.metrics = metrics
	}
}

func (c *config) log() logging.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.Default()
}

func (c *config) labels(worker string) map[string]string {
	labels := map[string]string{labelScheduler: c.name}
	if worker != "" {
		labels[labelWorker] = worker
	}
	return labels
}

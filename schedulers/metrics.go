package schedulers

import "time"

// MetricsCollector receives scheduler measurements.
// oteladapters.MetricsCollector implements it on OpenTelemetry.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

const (
	metricTasksExecuted = "rx_scheduler_tasks_executed_total"
	metricTasksDropped  = "rx_scheduler_tasks_dropped_total"
	metricTaskPanics    = "rx_scheduler_task_panics_total"
	metricTaskDuration  = "rx_scheduler_task_duration_seconds"
	metricQueueDepth    = "rx_scheduler_queue_depth"

	labelScheduler = "scheduler"
	labelWorker    = "worker"
)

package rules

import "time"

// MetricsCollector records rule engine observability signals.
type MetricsCollector interface {
	RecordRuleFired(rule string)
	RecordCacheHit(rule string)
	RecordCacheMiss(rule string)
	RecordHistoryQuery(rule string)
	RecordEvaluationDuration(d time.Duration)
	RecordError(rule string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordRuleFired(string)                 {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                  {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                 {}
func (n *NoopMetricsCollector) RecordHistoryQuery(string)              {}
func (n *NoopMetricsCollector) RecordEvaluationDuration(time.Duration) {}
func (n *NoopMetricsCollector) RecordError(string)                     {}

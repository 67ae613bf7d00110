// Package metrics exposes rule engine counters on a dedicated Prometheus
// registry served from its own listener.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusCollector struct {
	registry           *prometheus.Registry
	ruleFired          *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	historyQueries     *prometheus.CounterVec
	ruleErrors         *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

func NewPrometheusCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	return &PrometheusCollector{
		registry: registry,
		ruleFired: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_rule_fired_total",
			Help: "Total number of times each rule flagged a transaction",
		}, []string{"rule"}),
		cacheHits: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_flag_cache_hits_total",
			Help: "Flag cache hits per rule (historical query skipped)",
		}, []string{"rule"}),
		cacheMisses: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_flag_cache_misses_total",
			Help: "Flag cache misses per rule",
		}, []string{"rule"}),
		historyQueries: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_history_queries_total",
			Help: "Historical store queries issued per rule",
		}, []string{"rule"}),
		ruleErrors: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_rule_errors_total",
			Help: "Rule evaluation failures per rule",
		}, []string{"rule"}),
		evaluationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fraudwatch_evaluation_duration_seconds",
			Help:    "Time taken to evaluate the full rule set",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (c *PrometheusCollector) RecordRuleFired(rule string)    { c.ruleFired.WithLabelValues(rule).Inc() }
func (c *PrometheusCollector) RecordCacheHit(rule string)     { c.cacheHits.WithLabelValues(rule).Inc() }
func (c *PrometheusCollector) RecordCacheMiss(rule string)    { c.cacheMisses.WithLabelValues(rule).Inc() }
func (c *PrometheusCollector) RecordHistoryQuery(rule string) { c.historyQueries.WithLabelValues(rule).Inc() }
func (c *PrometheusCollector) RecordError(rule string)        { c.ruleErrors.WithLabelValues(rule).Inc() }

func (c *PrometheusCollector) RecordEvaluationDuration(d time.Duration) {
	c.evaluationDuration.Observe(d.Seconds())
}

func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on its own listener so scrapes never compete
// with ingest traffic.
func (c *PrometheusCollector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("metrics server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server failed: %v", err)
		}
	}()
	return server
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repair_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "repair_http_request_duration_seconds",
		Help:    "HTTP request duration by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SnapshotFlushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repair_snapshot_flushes_total",
		Help: "Completed durable snapshot flushes",
	})

	SnapshotFlushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repair_snapshot_flush_failures_total",
		Help: "Durable snapshot flushes that failed (in-memory state unaffected)",
	})

	SnapshotFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "repair_snapshot_flush_duration_seconds",
		Help:    "Duration of durable snapshot flushes",
		Buckets: prometheus.DefBuckets,
	})

	ChangeLogAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repair_changelog_append_failures_total",
		Help: "Change log appends that failed (audit entry lost)",
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Notification hub
	HubSubscribers  prometheus.Gauge
	HubBroadcasts   *prometheus.CounterVec
	HubPushFailures prometheus.Counter
	HubEvictions    prometheus.Counter
	SinkDropped     *prometheus.CounterVec
	SinkFailures    *prometheus.CounterVec

	// Pickups
	PickupsCreated     prometheus.Counter
	ValidationFailures prometheus.Counter
	PhotoUploads       prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Photo cleanup job
	BlobsCleaned prometheus.Counter
	CleanupRuns  *prometheus.CounterVec

	// Redis mirror
	RedisOperations *prometheus.CounterVec
}

// New creates all application metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HubSubscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "subscribers",
			Help:      "Current number of open notification channels",
		}),
		HubBroadcasts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "broadcasts_total",
			Help:      "Total number of broadcast events by type",
		}, []string{"event_type"}),
		HubPushFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "push_failures_total",
			Help:      "Total number of failed pushes to a channel",
		}),
		HubEvictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "evictions_total",
			Help:      "Total number of channels evicted after a failed push",
		}),
		SinkDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "sink_dropped_total",
			Help:      "Events dropped because a sink buffer was full",
		}, []string{"sink"}),
		SinkFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "sink_failures_total",
			Help:      "Events a sink failed to deliver",
		}, []string{"sink"}),

		PickupsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pickups",
			Name:      "created_total",
			Help:      "Total number of pickup requests created",
		}),
		ValidationFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pickups",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected pickup submissions",
		}),
		PhotoUploads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pickups",
			Name:      "photo_uploads_total",
			Help:      "Total number of pickup photos stored",
		}),

		DatabaseOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		BlobsCleaned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "orphan_blobs_deleted_total",
			Help:      "Total number of unreferenced photo blobs deleted",
		}),
		CleanupRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "cleanup_runs_total",
			Help:      "Photo cleanup job runs by outcome",
		}, []string{"status"}),

		RedisOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redis_operations_total",
			Help:      "Total number of Redis operations",
		}, []string{"operation", "status"}),
	}
}

// NewNop returns metrics bound to a throwaway registry, for tests and tools.
func NewNop() *Metrics {
	return New("labfetch", prometheus.NewRegistry())
}

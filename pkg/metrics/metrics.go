package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for bytesink components.
type Registry struct {
	// Sink Metrics
	SinkItemsSubmitted *prometheus.CounterVec
	SinkBytesWritten   *prometheus.CounterVec
	SinkFlushes        *prometheus.CounterVec
	SinkCloses         *prometheus.CounterVec
	SinkErrors         *prometheus.CounterVec
	SinkSuspensions    *prometheus.CounterVec
	SinkPendingBytes   *prometheus.GaugeVec

	// Remote Writer Metrics
	RemoteAppends      *prometheus.CounterVec
	RemoteAppendErrors *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by bytesink components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		SinkItemsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "items_submitted_total",
				Help:      "Total number of items accepted by the sink",
			},
			[]string{"sink_name"},
		),

		SinkBytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "bytes_submitted_total",
				Help:      "Total bytes of items accepted by the sink",
			},
			[]string{"sink_name"},
		),

		SinkFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "flushes_total",
				Help:      "Total number of completed sink flushes",
			},
			[]string{"sink_name"},
		),

		SinkCloses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "closes_total",
				Help:      "Total number of completed sink closes",
			},
			[]string{"sink_name"},
		),

		SinkErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "errors_total",
				Help:      "Total number of writer errors surfaced by the sink",
			},
			[]string{"sink_name", "operation"},
		),

		SinkSuspensions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "suspensions_total",
				Help:      "Total number of times a sink operation suspended on a writer that was not ready",
			},
			[]string{"sink_name", "operation"},
		),

		SinkPendingBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "bytesink",
				Subsystem: "sink",
				Name:      "pending_bytes",
				Help:      "Unwritten bytes of the item currently in flight",
			},
			[]string{"sink_name"},
		),

		RemoteAppends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "remote",
				Name:      "appends_total",
				Help:      "Total number of completed remote append commands",
			},
			[]string{"key"},
		),

		RemoteAppendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bytesink",
				Subsystem: "remote",
				Name:      "append_errors_total",
				Help:      "Total number of failed remote append commands",
			},
			[]string{"key"},
		),
	}
}

package sink

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/bytesink/pkg/metrics"
)

// MetricsSink wraps a Sink with Prometheus metrics collection.
type MetricsSink[T Bytes] struct {
	sink     Sink[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a writer-backed sink with metrics enabled.
func NewWithMetrics[T Bytes](w AsyncWriter, name string) Sink[T] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics[T](w, name, config)
}

// NewWithConfigAndMetrics creates a writer-backed sink with custom metrics configuration.
func NewWithConfigAndMetrics[T Bytes](w AsyncWriter, name string, metricsConfig metrics.Config) Sink[T] {
	base := New[T](w)

	if !metricsConfig.Enabled {
		return base
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsSink[T]{
		sink:     base,
		name:     name,
		registry: registry,
		enabled:  true,
	}
}

// Ready reports readiness, counting suspensions and surfaced errors.
func (ms *MetricsSink[T]) Ready() error {
	err := ms.sink.Ready()
	ms.observe("ready", err)
	return err
}

// Submit accepts one item for writing.
func (ms *MetricsSink[T]) Submit(item T) error {
	err := ms.sink.Submit(item)
	if ms.enabled && err == nil {
		ms.registry.SinkItemsSubmitted.WithLabelValues(ms.name).Inc()
		ms.registry.SinkBytesWritten.WithLabelValues(ms.name).Add(float64(len(item)))
	}
	ms.observe("submit", err)
	return err
}

// Flush drains the pending item and flushes the underlying writer.
func (ms *MetricsSink[T]) Flush() error {
	err := ms.sink.Flush()
	if ms.enabled && err == nil {
		ms.registry.SinkFlushes.WithLabelValues(ms.name).Inc()
	}
	ms.observe("flush", err)
	return err
}

// Close drains the pending item and closes the underlying writer.
func (ms *MetricsSink[T]) Close() error {
	err := ms.sink.Close()
	if ms.enabled && err == nil {
		ms.registry.SinkCloses.WithLabelValues(ms.name).Inc()
	}
	ms.observe("close", err)
	return err
}

// Await forwards to the wrapped sink's writer-readiness wait.
func (ms *MetricsSink[T]) Await(ctx context.Context) error {
	if a, ok := ms.sink.(Awaiter); ok {
		return a.Await(ctx)
	}
	return ErrNotReady
}

// observe records the outcome of a sink operation.
func (ms *MetricsSink[T]) observe(operation string, err error) {
	if !ms.enabled {
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrNotReady):
		ms.registry.SinkSuspensions.WithLabelValues(ms.name, operation).Inc()
	case errors.Is(err, ErrSinkClosed):
	default:
		ms.registry.SinkErrors.WithLabelValues(ms.name, operation).Inc()
	}

	if p, ok := ms.sink.(interface{ PendingBytes() int }); ok {
		ms.registry.SinkPendingBytes.WithLabelValues(ms.name).Set(float64(p.PendingBytes()))
	}
}

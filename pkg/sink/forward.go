package sink

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Source produces byte-bearing items for forwarding into a Sink.
type Source[T Bytes] interface {
	// Next returns the next item and true, or the zero value and false
	// once the source is exhausted.
	Next(ctx context.Context) (T, bool, error)

	// Close releases the source's resources.
	Close() error
}

// sliceSource implements Source for slices.
type sliceSource[T Bytes] struct {
	items []T
	index int
}

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	if s.index >= len(s.items) {
		var zero T
		return zero, false, nil
	}
	item := s.items[s.index]
	s.index++
	return item, true, nil
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// FromSlice creates a Source over the given items.
func FromSlice[T Bytes](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

// ForwardConfig holds configuration for Forward.
type ForwardConfig struct {
	// PollInterval is how long to wait before re-polling a suspended sink
	// when the writer cannot signal readiness itself.
	// Default: 1 millisecond.
	PollInterval time.Duration

	// FlushEvery optionally schedules periodic flushes using a cron
	// expression ("@every 10s", "0 * * * *"). The schedule only requests
	// a flush; the forward loop itself performs it between items, so the
	// sink still sees a single caller.
	FlushEvery string

	// OnItem is called after each item is accepted by the sink.
	OnItem func(bytes int)

	// OnError is called when forwarding stops with an error.
	OnError func(error)
}

// DefaultForwardConfig returns a default configuration.
func DefaultForwardConfig() ForwardConfig {
	return ForwardConfig{
		PollInterval: time.Millisecond,
	}
}

// Forward pumps every item from src into s one at a time, preserving
// order and backpressure, then flushes and closes the sink. It is the
// single sequential caller the sink's contract requires: whenever the
// sink suspends, Forward waits for writer readiness (or the poll
// interval) and resumes. The source is closed before returning.
func Forward[T Bytes](ctx context.Context, src Source[T], s Sink[T], config ForwardConfig) error {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultForwardConfig().PollInterval
	}

	var flushRequested atomic.Bool
	if config.FlushEvery != "" {
		schedule := cron.New()
		if _, err := schedule.AddFunc(config.FlushEvery, func() {
			flushRequested.Store(true)
		}); err != nil {
			return forwardFail(config, err)
		}
		schedule.Start()
		defer schedule.Stop()
	}

	defer func() { _ = src.Close() }()

	for {
		if err := complete(ctx, s, s.Ready, config.PollInterval); err != nil {
			return forwardFail(config, err)
		}

		if flushRequested.Swap(false) {
			if err := complete(ctx, s, s.Flush, config.PollInterval); err != nil {
				return forwardFail(config, err)
			}
		}

		item, ok, err := src.Next(ctx)
		if err != nil {
			return forwardFail(config, err)
		}
		if !ok {
			break
		}

		if err := s.Submit(item); err != nil {
			return forwardFail(config, err)
		}
		if config.OnItem != nil {
			config.OnItem(len(item))
		}
	}

	if err := complete(ctx, s, s.Flush, config.PollInterval); err != nil {
		return forwardFail(config, err)
	}
	if err := complete(ctx, s, s.Close, config.PollInterval); err != nil {
		return forwardFail(config, err)
	}

	return nil
}

// complete drives a poll-style sink operation until it stops returning
// ErrNotReady, waiting for writer readiness between attempts.
func complete[T Bytes](ctx context.Context, s Sink[T], op func() error, interval time.Duration) error {
	for {
		err := op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotReady) {
			return err
		}
		if err := await(ctx, s, interval); err != nil {
			return err
		}
	}
}

// await waits until the sink is worth re-polling, preferring the writer's
// own readiness signal over the timed fallback.
func await[T Bytes](ctx context.Context, s Sink[T], interval time.Duration) error {
	if a, ok := s.(Awaiter); ok {
		err := a.Await(ctx)
		if err == nil || !errors.Is(err, ErrNotReady) {
			return err
		}
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func forwardFail(config ForwardConfig, err error) error {
	if config.OnError != nil {
		config.OnError(err)
	}
	return err
}

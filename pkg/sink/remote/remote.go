package remote

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/bytesink/pkg/metrics"
	"github.com/vnykmshr/bytesink/pkg/sink"
)

// ErrWriterClosed is returned when attempting to write after a successful close.
var ErrWriterClosed = errors.New("remote writer is closed")

// appendAPI is the slice of the go-redis client surface the writer needs,
// narrowed so tests can stub command results.
type appendAPI interface {
	Append(ctx context.Context, key, value string) *redis.IntCmd
	Close() error
}

// Config holds configuration options for Writer.
type Config struct {
	// Key is the Redis key the writer appends to.
	Key string

	// MaxChunk caps how many bytes a single APPEND command carries.
	// Zero means no cap: each attempt appends the whole offered slice.
	MaxChunk int

	// CloseClient controls whether TryClose also closes the Redis client.
	CloseClient bool

	// Context is used for issued commands. Default: context.Background().
	Context context.Context

	// Metrics optionally enables Prometheus instrumentation of append commands.
	Metrics metrics.Config
}

// Writer appends byte chunks to a Redis key via APPEND and implements the
// sink.AsyncWriter boundary with genuine suspension: an attempt launches
// the command and reports sink.ErrNotReady until it completes, so a byte
// count is only ever reported after Redis has durably accepted the chunk.
// Writer assumes the single sequential caller the boundary prescribes.
type Writer struct {
	api      appendAPI
	config   Config
	registry *metrics.Registry

	// res carries the in-flight APPEND's result; nil when idle.
	res      chan error
	chunkLen int
	err      error
	closed   bool
}

var (
	_ sink.AsyncWriter = (*Writer)(nil)
	_ sink.Awaiter     = (*Writer)(nil)
)

// New creates a Writer that appends to key and owns the client.
func New(client *redis.Client, key string) *Writer {
	return NewWithConfig(client, Config{Key: key, CloseClient: true})
}

// NewWithConfig creates a Writer with the specified configuration.
func NewWithConfig(client *redis.Client, config Config) *Writer {
	return newWriter(client, config)
}

func newWriter(api appendAPI, config Config) *Writer {
	if config.Context == nil {
		config.Context = context.Background()
	}

	w := &Writer{
		api:    api,
		config: config,
	}

	if config.Metrics.Enabled {
		w.registry = metrics.DefaultRegistry
		if config.Metrics.Registry != nil {
			w.registry = metrics.NewRegistry(config.Metrics.Registry)
		}
	}

	return w
}

// WriteSome implements sink.AsyncWriter.WriteSome. The first attempt for
// a chunk launches the APPEND and suspends; subsequent attempts poll the
// in-flight command and report the accepted byte count once it completes.
func (w *Writer) WriteSome(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrWriterClosed
	}

	if w.res != nil {
		select {
		case err := <-w.res:
			return w.finish(len(p), err)
		default:
			return 0, sink.ErrNotReady
		}
	}

	if len(p) == 0 {
		return 0, nil
	}

	n := len(p)
	if w.config.MaxChunk > 0 && n > w.config.MaxChunk {
		n = w.config.MaxChunk
	}

	// Copy before handing off: the caller's buffer stays under its control
	// while the command is in flight.
	chunk := string(p[:n])
	res := make(chan error, 1)
	w.res = res
	w.chunkLen = n

	go func() {
		res <- w.api.Append(w.config.Context, w.config.Key, chunk).Err()
	}()

	return 0, sink.ErrNotReady
}

// TryFlush implements sink.AsyncWriter.TryFlush. The writer holds no
// buffer of its own, so a flush completes as soon as nothing is in flight.
func (w *Writer) TryFlush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrWriterClosed
	}
	if w.res != nil {
		return sink.ErrNotReady
	}
	return nil
}

// TryClose implements sink.AsyncWriter.TryClose.
func (w *Writer) TryClose() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	if w.res != nil {
		return sink.ErrNotReady
	}

	if w.config.CloseClient {
		if err := w.api.Close(); err != nil {
			w.err = err
			return err
		}
	}
	w.closed = true
	return nil
}

// Await implements sink.Awaiter: it blocks until the in-flight APPEND
// completes, leaving the result for the next WriteSome poll.
func (w *Writer) Await(ctx context.Context) error {
	if w.res == nil {
		return nil
	}

	select {
	case err := <-w.res:
		// Re-arm the result so the accounting still happens in WriteSome.
		w.res <- err
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finish settles a completed APPEND against the currently offered slice.
func (w *Writer) finish(offered int, err error) (int, error) {
	n := w.chunkLen
	w.res = nil
	w.chunkLen = 0

	if err != nil {
		if w.registry != nil {
			w.registry.RemoteAppendErrors.WithLabelValues(w.config.Key).Inc()
		}
		w.err = err
		return 0, err
	}

	if w.registry != nil {
		w.registry.RemoteAppends.WithLabelValues(w.config.Key).Inc()
	}
	if n > offered {
		n = offered
	}
	return n, nil
}

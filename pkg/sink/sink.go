package sink

import (
	"context"
	"errors"
)

// ErrNotReady is returned when an operation cannot complete yet and should
// be retried once the underlying writer becomes ready. It signals
// suspension, not failure: no progress is lost and the operation resumes
// from the same byte offset on the next call.
var ErrNotReady = errors.New("sink is not ready")

// ErrSinkClosed is returned when attempting to use a sink after a
// successful Close.
var ErrSinkClosed = errors.New("sink is closed")

// Bytes constrains sink items to values viewable as a byte slice.
type Bytes interface {
	~[]byte | ~string
}

// AsyncWriter is the writable-resource boundary the adapter drives. All
// three operations are poll-style attempts: they either complete, return
// ErrNotReady to be retried later, or fail with a terminal error.
type AsyncWriter interface {
	// WriteSome attempts a single partial write of p and returns how many
	// bytes were accepted. Accepting zero bytes without an error means the
	// writer temporarily cannot proceed, as does returning ErrNotReady;
	// a partial count alongside ErrNotReady is honored before suspending.
	WriteSome(p []byte) (int, error)

	// TryFlush attempts to flush the writer. Returns nil when done and
	// ErrNotReady when the attempt should be repeated.
	TryFlush() error

	// TryClose attempts to close the writer. Returns nil when done and
	// ErrNotReady when the attempt should be repeated.
	TryClose() error
}

// Awaiter is optionally implemented by writers that can block until they
// are plausibly ready again, letting drivers wait instead of spinning on
// ErrNotReady. Await returns nil once the writer is worth re-polling.
type Awaiter interface {
	Await(ctx context.Context) error
}

// Sink accepts discrete byte-bearing items pushed to it one at a time,
// with explicit readiness signaling and explicit flush/close operations.
// Sinks assume a single sequential caller; operations that return
// ErrNotReady are suspension points to be re-polled by that same caller.
type Sink[T Bytes] interface {
	// Ready reports whether the sink can accept the next item, draining
	// any partially written item first. Returns nil when ready,
	// ErrNotReady while the previous item is still being written.
	Ready() error

	// Submit accepts one item for writing and opportunistically drives the
	// write as far as the writer allows. A nil return means the item was
	// accepted, not necessarily fully written; gate the next Submit on
	// Ready. Returns ErrNotReady without accepting if the previous item
	// has not fully drained.
	Submit(item T) error

	// Flush writes any remaining bytes of the current item, then forwards
	// a flush to the underlying writer.
	Flush() error

	// Close writes any remaining bytes of the current item, then forwards
	// a close to the underlying writer. After a successful Close the sink
	// rejects further use.
	Close() error
}

// WriterSink adapts an AsyncWriter into a Sink. It owns the writer
// exclusively for its lifetime and holds at most one item in flight: a
// borrowed byte view of the item plus a cursor of how much has been
// written. WriterSink performs no locking and must be driven by a single
// sequential caller.
type WriterSink[T Bytes] struct {
	writer  AsyncWriter
	pending []byte
	off     int
	err     error
	closed  bool
}

var _ Sink[[]byte] = (*WriterSink[[]byte])(nil)

// New creates a WriterSink that takes exclusive ownership of w.
func New[T Bytes](w AsyncWriter) *WriterSink[T] {
	return &WriterSink[T]{writer: w}
}

// Ready implements Sink.Ready. Once the pending item is fully written,
// repeated calls perform no writer operations.
func (s *WriterSink[T]) Ready() error {
	if s.closed {
		return ErrSinkClosed
	}
	if s.err != nil {
		return s.err
	}
	return s.drain()
}

// Submit implements Sink.Submit. The item's bytes are borrowed, not
// copied, and are written in order without modification.
func (s *WriterSink[T]) Submit(item T) error {
	if s.closed {
		return ErrSinkClosed
	}
	if s.err != nil {
		return s.err
	}
	if s.pending != nil {
		return ErrNotReady
	}
	s.pending = []byte(item)
	s.off = 0
	if err := s.drain(); err != nil && !errors.Is(err, ErrNotReady) {
		return err
	}
	// Suspension is not a Submit failure: the item is accepted and the
	// remaining bytes drain on subsequent Ready/Flush/Close polls.
	return nil
}

// Flush implements Sink.Flush. It never discards unwritten bytes: the
// writer's flush is not attempted until the pending item is fully drained.
func (s *WriterSink[T]) Flush() error {
	if s.closed {
		return ErrSinkClosed
	}
	if s.err != nil {
		return s.err
	}
	if err := s.drain(); err != nil {
		return err
	}
	if err := s.writer.TryFlush(); err != nil {
		if errors.Is(err, ErrNotReady) {
			return ErrNotReady
		}
		s.err = err
		return err
	}
	return nil
}

// Close implements Sink.Close. Closing an already-closed sink is a no-op.
func (s *WriterSink[T]) Close() error {
	if s.closed {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	if err := s.drain(); err != nil {
		return err
	}
	if err := s.writer.TryClose(); err != nil {
		if errors.Is(err, ErrNotReady) {
			return ErrNotReady
		}
		s.err = err
		return err
	}
	s.closed = true
	return nil
}

// Await blocks until the underlying writer signals readiness, if the
// writer supports it. Writers without an Awaiter report ErrNotReady and
// callers fall back to timed polling.
func (s *WriterSink[T]) Await(ctx context.Context) error {
	if a, ok := s.writer.(Awaiter); ok {
		return a.Await(ctx)
	}
	return ErrNotReady
}

// PendingBytes returns how many bytes of the current item remain
// unwritten. Zero means the sink is ready for the next item.
func (s *WriterSink[T]) PendingBytes() int {
	return len(s.pending) - s.off
}

// IsClosed returns true after a successful Close.
func (s *WriterSink[T]) IsClosed() bool {
	return s.closed
}

// drain writes the unwritten suffix of the pending item until the writer
// suspends, fails, or the item completes. The cursor only ever advances
// by the writer's reported count, so suspension resumes at the exact
// offset where it left off.
func (s *WriterSink[T]) drain() error {
	for s.pending != nil {
		if s.off == len(s.pending) {
			s.pending = nil
			s.off = 0
			break
		}
		n, err := s.writer.WriteSome(s.pending[s.off:])
		if n > 0 {
			s.off += n
		}
		if err != nil {
			if errors.Is(err, ErrNotReady) {
				return ErrNotReady
			}
			// Terminal: discard the pending item, remember the error, and
			// surface it unchanged. The sink is unusable from here on.
			s.pending = nil
			s.off = 0
			s.err = err
			return err
		}
		if n == 0 {
			return ErrNotReady
		}
	}
	return nil
}

package remote

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/bytesink/internal/testutil"
	"github.com/vnykmshr/bytesink/pkg/metrics"
	"github.com/vnykmshr/bytesink/pkg/sink"
)

// fakeAppendAPI is an in-memory stand-in for the go-redis append surface.
type fakeAppendAPI struct {
	mu      sync.Mutex
	data    map[string]string
	appends int
	err     error
	gate    chan struct{}
	closed  bool
}

func newFakeAppendAPI() *fakeAppendAPI {
	return &fakeAppendAPI{data: make(map[string]string)}
}

func (f *fakeAppendAPI) Append(ctx context.Context, key, value string) *redis.IntCmd {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cmd := redis.NewIntCmd(ctx, "append", key, value)
	f.appends++
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.data[key] += value
	cmd.SetVal(int64(len(f.data[key])))
	return cmd
}

func (f *fakeAppendAPI) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeAppendAPI) contents(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

func (f *fakeAppendAPI) appendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appends
}

// driveReady polls the sink until it is ready or fails.
func driveReady(ctx context.Context, s *sink.WriterSink[[]byte]) error {
	for {
		err := s.Ready()
		if err == nil {
			return nil
		}
		if !errors.Is(err, sink.ErrNotReady) {
			return err
		}
		if err := s.Await(ctx); err != nil {
			return err
		}
	}
}

func TestWriterReportsBytesOnlyAfterCompletion(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{Key: "k"})

	n, err := w.WriteSome([]byte("hello"))
	testutil.AssertErrorIs(t, err, sink.ErrNotReady)
	testutil.AssertEqual(t, n, 0)

	testutil.AssertNoError(t, w.Await(ctx))

	n, err = w.WriteSome([]byte("hello"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 5)
	testutil.AssertEqual(t, fake.contents("k"), "hello")
	testutil.AssertEqual(t, fake.appendCount(), 1)
}

func TestWriterExactlyOnceAcrossSuspension(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	fake := newFakeAppendAPI()
	gate := make(chan struct{})
	fake.gate = gate

	w := newWriter(fake, Config{Key: "k"})
	s := sink.New[[]byte](w)

	testutil.AssertNoError(t, s.Submit([]byte("payload")))

	// While the command is in flight every poll suspends; nothing is
	// re-issued and the cursor does not move.
	testutil.AssertErrorIs(t, s.Ready(), sink.ErrNotReady)
	testutil.AssertErrorIs(t, s.Ready(), sink.ErrNotReady)
	testutil.AssertEqual(t, s.PendingBytes(), 7)

	close(gate)
	testutil.AssertNoError(t, driveReady(ctx, s))
	testutil.AssertEqual(t, fake.contents("k"), "payload")
	testutil.AssertEqual(t, fake.appendCount(), 1)
}

func TestWriterChunkedAppends(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{Key: "k", MaxChunk: 2})
	s := sink.New[[]byte](w)

	testutil.AssertNoError(t, s.Submit([]byte("abcde")))
	testutil.AssertNoError(t, driveReady(ctx, s))

	testutil.AssertEqual(t, fake.contents("k"), "abcde")
	testutil.AssertEqual(t, fake.appendCount(), 3)
}

func TestWriterErrorPropagatesUnchanged(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("READONLY You can't write against a read only replica")
	fake := newFakeAppendAPI()
	fake.err = boom

	w := newWriter(fake, Config{Key: "k"})
	s := sink.New[[]byte](w)

	testutil.AssertNoError(t, s.Submit([]byte("data")))
	testutil.AssertErrorIs(t, driveReady(ctx, s), boom)

	// Terminal for the writer as well.
	_, err := w.WriteSome([]byte("more"))
	testutil.AssertErrorIs(t, err, boom)
}

func TestWriterCloseOwnsClient(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{Key: "k", CloseClient: true})
	s := sink.New[[]byte](w)

	testutil.AssertNoError(t, s.Submit([]byte("bye")))
	testutil.AssertNoError(t, driveReady(ctx, s))
	testutil.AssertNoError(t, s.Close())
	testutil.AssertEqual(t, fake.closed, true)

	_, err := w.WriteSome([]byte("x"))
	testutil.AssertErrorIs(t, err, ErrWriterClosed)
}

func TestWriterCloseLeavesSharedClient(t *testing.T) {
	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{Key: "k"})

	testutil.AssertNoError(t, w.TryClose())
	testutil.AssertEqual(t, fake.closed, false)
}

func TestWriterFlushCompletesWhenIdle(t *testing.T) {
	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{Key: "k"})
	testutil.AssertNoError(t, w.TryFlush())
}

func TestWriterMetrics(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	reg := prometheus.NewRegistry()
	fake := newFakeAppendAPI()
	w := newWriter(fake, Config{
		Key:      "k",
		MaxChunk: 2,
		Metrics:  metrics.Config{Enabled: true, Registry: reg},
	})
	s := sink.New[[]byte](w)

	testutil.AssertNoError(t, s.Submit([]byte("abcd")))
	testutil.AssertNoError(t, driveReady(ctx, s))

	families, err := reg.Gather()
	testutil.AssertNoError(t, err)

	var appends float64
	for _, mf := range families {
		if mf.GetName() != "bytesink_remote_appends_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			appends += m.GetCounter().GetValue()
		}
	}
	testutil.AssertEqual(t, appends, 2.0)
}

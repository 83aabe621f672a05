/*
Package sink adapts asynchronous byte writers into push-based stream sinks.

A Sink accepts discrete byte-bearing items one at a time; an AsyncWriter
accepts raw bytes in possibly-partial chunks and may need several
attempts before a write, flush, or close completes. WriterSink bridges
the two with a small state machine: it holds at most one item in flight,
tracks a cursor of how much has been written, and resumes suspended
operations at the exact byte offset where they left off.

# Quick Start

	file, _ := os.Create("out.log")
	s := sink.New[[]byte](sink.WrapWriter(file))

	src := sink.FromSlice([][]byte{[]byte("hello"), []byte("world")})
	err := sink.Forward(context.Background(), src, s, sink.DefaultForwardConfig())

# Driving a Sink

The sink is poll-driven by a single sequential caller. Gate each Submit
on Ready, and re-poll any operation that returns ErrNotReady:

	for {
		err := s.Ready()
		if err == nil {
			break
		}
		if !errors.Is(err, sink.ErrNotReady) {
			return err
		}
		// wait for writer readiness, then poll again
	}
	if err := s.Submit(item); err != nil {
		return err
	}

Forward implements exactly this loop, including the final flush and
close, and is the usual way to consume a whole Source.

# The Writer Boundary

AsyncWriter is deliberately minimal: WriteSome may accept fewer bytes
than offered, and any of the three operations may report ErrNotReady to
be retried later. WrapWriter adapts a blocking io.Writer (files,
buffers, network connections) into an always-ready AsyncWriter; the
remote subpackage provides a Redis-backed writer with genuine
suspension. Writers that can block until ready implement Awaiter so
drivers need not spin.

# Ordering and Backpressure

Items are written to completion, in submission order, before the next
item is accepted. The adapter never copies, batches, or reorders item
bytes, and a flush is never forwarded to the writer while item bytes
remain unwritten.

# Error Handling

Writer errors pass through unchanged: the adapter never wraps,
downgrades, or swallows them. A writer error is terminal for the sink:
the pending item is discarded and every later operation returns the same
error. There are no retries; callers that want them construct a new sink
over a fresh writer.

# Monitoring

NewWithMetrics and NewWithConfigAndMetrics wrap a sink with Prometheus
instrumentation (items, bytes, flushes, closes, suspensions, errors) via
the pkg/metrics registry.

# Concurrency

WriterSink performs no locking and starts no goroutines. All operations
must come from one logical caller at a time, matching the sink
contract's single-producer discipline. Cancellation belongs to the
driver: stop polling and the adapter simply holds its position.
*/
package sink

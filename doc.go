/*
Package bytesink adapts asynchronous byte writers into stream sinks.

A sink accepts discrete byte-bearing items pushed to it one at a time,
with explicit readiness signaling and explicit flush and close
operations. An asynchronous writer accepts raw bytes in possibly-partial
chunks and may need several attempts before a write, flush, or close
completes. The core of this library is the state machine bridging the
two: partial writes, suspend/resume at an exact byte offset, and
pass-through error propagation.

Sink adapter (pkg/sink):
  - sink: the Writer-to-Sink adapter, the AsyncWriter boundary, and the
    Forward driver that pumps a Source into a Sink
  - sink/remote: an AsyncWriter destination that appends to a Redis key

Instrumentation (pkg/metrics):
  - metrics: Prometheus registry shared by instrumented components

Example usage:

	import (
		"github.com/vnykmshr/bytesink/pkg/sink"
	)

	file, _ := os.Create("out.log")
	s := sink.New[[]byte](sink.WrapWriter(file))

	src := sink.FromSlice([][]byte{[]byte("hello"), []byte("world")})
	_ = sink.Forward(ctx, src, s, sink.DefaultForwardConfig())
*/
package bytesink

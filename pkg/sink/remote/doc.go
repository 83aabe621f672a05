/*
Package remote provides an asynchronous writer destination backed by Redis.

Writer satisfies sink.AsyncWriter by appending each accepted chunk to a
Redis key with APPEND. A write attempt launches the command and suspends
with sink.ErrNotReady; the byte count is reported only once Redis has
accepted the chunk, so a sink's cursor never advances past bytes that
could still be lost. Writer also implements sink.Awaiter, letting drivers
block on command completion instead of polling.

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	w := remote.New(client, "events:audit")
	s := sink.New[[]byte](w)

	src := sink.FromSlice([][]byte{[]byte("hello"), []byte("world")})
	err := sink.Forward(ctx, src, s, sink.DefaultForwardConfig())

Use Config.MaxChunk to bound APPEND payload sizes, and Config.Metrics to
record append counts and failures with Prometheus.
*/
package remote

package remote

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/bytesink/pkg/sink"
)

// Example demonstrates forwarding a stream of items into a Redis key.
// It requires a running Redis server, so it has no verified output.
func Example() {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	w := New(client, "events:audit")
	s := sink.New[[]byte](w)

	src := sink.FromSlice([][]byte{
		[]byte(`{"event":"login","user":"alice"}` + "\n"),
		[]byte(`{"event":"logout","user":"alice"}` + "\n"),
	})

	if err := sink.Forward(context.Background(), src, s, sink.DefaultForwardConfig()); err != nil {
		log.Fatal(err)
	}
}

// Example_sharedClient demonstrates appending through a client the caller
// keeps for other work, with chunked appends and a bounded command context.
func Example_sharedClient() {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = client.Close() }()

	w := NewWithConfig(client, Config{
		Key:      "logs:ingest",
		MaxChunk: 64 * 1024,
		Context:  context.Background(),
	})
	s := sink.New[[]byte](w)

	if err := s.Submit([]byte("payload")); err != nil {
		log.Fatal(err)
	}
	for {
		err := s.Ready()
		if err == nil {
			break
		}
		if err != sink.ErrNotReady {
			log.Fatal(err)
		}
		if err := s.Await(context.Background()); err != nil {
			log.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		log.Fatal(err)
	}
}

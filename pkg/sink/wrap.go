package sink

import "io"

// blockingWriter presents a blocking io.Writer behind the AsyncWriter
// boundary. It is always ready: writes block instead of suspending.
type blockingWriter struct {
	w io.Writer
}

// WrapWriter adapts a blocking io.Writer into an AsyncWriter. If the
// writer also implements Flush() error or io.Closer, TryFlush and
// TryClose forward to those; otherwise they complete immediately.
func WrapWriter(w io.Writer) AsyncWriter {
	return &blockingWriter{w: w}
}

func (b *blockingWriter) WriteSome(p []byte) (int, error) {
	return b.w.Write(p)
}

func (b *blockingWriter) TryFlush() error {
	if f, ok := b.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (b *blockingWriter) TryClose() error {
	if c, ok := b.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

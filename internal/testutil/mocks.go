package testutil

import (
	"bytes"
	"errors"
	"sync"

	"github.com/vnykmshr/bytesink/pkg/sink"
)

// MockAsyncWriter is a poll-style test writer that can simulate partial
// writes, not-ready stalls, and injected errors on any of the three
// writer operations, while recording everything it was asked to do.
type MockAsyncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer

	chunkSize     int
	notReadyOnNth int
	notReadyTimes int
	zeroOnNth     int
	errorOnNth    int
	writeErr      error

	flushNotReady int
	flushErr      error
	closeNotReady int
	closeErr      error

	writeCalls int
	flushCalls int
	closeCalls int
	closed     bool
}

var _ sink.AsyncWriter = (*MockAsyncWriter)(nil)

// NewMockAsyncWriter creates a new MockAsyncWriter that accepts every
// write in full until configured otherwise.
func NewMockAsyncWriter() *MockAsyncWriter {
	return &MockAsyncWriter{}
}

// WriteSome implements sink.AsyncWriter with configurable behavior.
func (m *MockAsyncWriter) WriteSome(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCalls++

	if m.errorOnNth > 0 && m.writeCalls == m.errorOnNth {
		return 0, m.writeErr
	}

	if m.notReadyOnNth > 0 &&
		m.writeCalls >= m.notReadyOnNth &&
		m.writeCalls < m.notReadyOnNth+m.notReadyTimes {
		return 0, sink.ErrNotReady
	}

	if m.zeroOnNth > 0 && m.writeCalls == m.zeroOnNth {
		return 0, nil
	}

	n := len(p)
	if m.chunkSize > 0 && n > m.chunkSize {
		n = m.chunkSize
	}
	m.buf.Write(p[:n])
	return n, nil
}

// TryFlush implements sink.AsyncWriter.
func (m *MockAsyncWriter) TryFlush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flushCalls++
	if m.flushNotReady > 0 {
		m.flushNotReady--
		return sink.ErrNotReady
	}
	return m.flushErr
}

// TryClose implements sink.AsyncWriter.
func (m *MockAsyncWriter) TryClose() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeCalls++
	if m.closeNotReady > 0 {
		m.closeNotReady--
		return sink.ErrNotReady
	}
	if m.closeErr != nil {
		return m.closeErr
	}
	m.closed = true
	return nil
}

// SetChunkSize caps how many bytes each WriteSome accepts (0 = unlimited).
func (m *MockAsyncWriter) SetChunkSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunkSize = n
}

// SetNotReadyOnNth makes the writer return sink.ErrNotReady for `times`
// consecutive write calls starting with the nth.
func (m *MockAsyncWriter) SetNotReadyOnNth(n, times int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notReadyOnNth = n
	m.notReadyTimes = times
}

// SetZeroOnNth makes the nth write call accept zero bytes without error.
func (m *MockAsyncWriter) SetZeroOnNth(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zeroOnNth = n
}

// SetErrorOnNth makes the nth write call fail with err.
func (m *MockAsyncWriter) SetErrorOnNth(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.New("simulated error")
	}
	m.errorOnNth = n
	m.writeErr = err
}

// SetFlushNotReady makes the next `times` flush attempts return sink.ErrNotReady.
func (m *MockAsyncWriter) SetFlushNotReady(times int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushNotReady = times
}

// SetFlushError makes flush attempts fail with err.
func (m *MockAsyncWriter) SetFlushError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushErr = err
}

// SetCloseNotReady makes the next `times` close attempts return sink.ErrNotReady.
func (m *MockAsyncWriter) SetCloseNotReady(times int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeNotReady = times
}

// SetCloseError makes close attempts fail with err.
func (m *MockAsyncWriter) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeErr = err
}

// String returns the bytes accepted so far.
func (m *MockAsyncWriter) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String()
}

// Len returns how many bytes have been accepted so far.
func (m *MockAsyncWriter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Len()
}

// WriteCalls returns the number of WriteSome calls, stalls included.
func (m *MockAsyncWriter) WriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCalls
}

// FlushCalls returns the number of TryFlush calls.
func (m *MockAsyncWriter) FlushCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCalls
}

// CloseCalls returns the number of TryClose calls.
func (m *MockAsyncWriter) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// Closed returns true once a close attempt has completed.
func (m *MockAsyncWriter) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

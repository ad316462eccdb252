package transport

import (
	"bufio"
	"io"
	"net"
)

// Socket wraps a net.Conn with a read-ahead buffer. Readiness is established by Wait, which
// blocks until at least a single byte is buffered or the connection fails. Afterwards, Next
// returns the buffered bytes without ever blocking.
//
// Wait and Next must never run concurrently: the poller parks the waiting goroutine until the
// serving one has consumed the data.
type Socket struct {
	conn   net.Conn
	reader *bufio.Reader
	err    error
}

func NewSocket(conn net.Conn, readBufferSize int) *Socket {
	return &Socket{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, readBufferSize),
	}
}

// Wait blocks until the socket becomes readable. Errors are preserved and returned by Next
// after the buffered data is exhausted.
func (s *Socket) Wait() error {
	if _, err := s.reader.Peek(1); err != nil {
		s.err = err
	}

	return s.err
}

// Next returns at most n buffered bytes. The returned slice is valid until the next call to
// Wait. If nothing is buffered, the error that interrupted the last Wait is returned, or
// io.EOF if there was none.
func (s *Socket) Next(n int) ([]byte, error) {
	n = min(n, s.reader.Buffered())
	if n == 0 {
		if s.err == nil {
			return nil, io.EOF
		}

		return nil, s.err
	}

	data, err := s.reader.Peek(n)
	if err != nil {
		return nil, err
	}

	_, err = s.reader.Discard(n)
	return data, err
}

// Failed reports whether the last Wait ended with an error. A failed socket never becomes
// readable again.
func (s *Socket) Failed() bool {
	return s.err != nil
}

func (s *Socket) Write(b []byte) (int, error) {
	return s.conn.Write(b)
}

func (s *Socket) Remote() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *Socket) Close() error {
	return s.conn.Close()
}

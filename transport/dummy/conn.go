package dummy

import (
	"io"
	"net"
	"sync"
	"time"
)

// Conn is a net.Conn replaying the predefined chunks, one per Read, and recording everything
// written into it. After the chunks are exhausted, Read returns io.EOF.
type Conn struct {
	mu      sync.Mutex
	chunks  [][]byte
	written []byte
	closed  int
	nop     bool
}

func NewConn(chunks ...string) *Conn {
	c := new(Conn)
	for _, chunk := range chunks {
		c.chunks = append(c.chunks, []byte(chunk))
	}

	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed > 0 {
		return 0, net.ErrClosed
	}

	if !c.nop {
		c.written = append(c.written, b...)
	}

	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return string(c.written)
}

// Closed returns how many times Close was called.
func (c *Conn) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed++
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Nop disables recording of written data.
func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}

package transport

import "time"

// Handle identifies a connection for its whole lifetime. Handles are never reused, therefore
// comparing them also orders connections by acceptance.
type Handle uint64

// Connection is a single accepted client together with everything it sent so far.
type Connection struct {
	handle   Handle
	socket   *Socket
	remote   string
	buff     []byte
	max      int
	scanned  int
	alive    bool
	lastSeen time.Time
}

func NewConnection(handle Handle, socket *Socket, maxRequestSize int, now time.Time) *Connection {
	remote := "unknown"
	if addr := socket.Remote(); addr != nil {
		remote = addr.String()
	}

	return &Connection{
		handle:   handle,
		socket:   socket,
		remote:   remote,
		buff:     make([]byte, 0, min(maxRequestSize, 4096)),
		max:      maxRequestSize,
		alive:    true,
		lastSeen: now,
	}
}

func (c *Connection) Handle() Handle {
	return c.handle
}

func (c *Connection) Socket() *Socket {
	return c.socket
}

// Remote returns the textual remote address, meant for logging.
func (c *Connection) Remote() string {
	return c.remote
}

// Bytes returns everything received so far. The slice must not be modified.
func (c *Connection) Bytes() []byte {
	return c.buff
}

// Received returns how many bytes were received so far.
func (c *Connection) Received() int {
	return len(c.buff)
}

// Free returns how many more bytes the request buffer can take.
func (c *Connection) Free() int {
	return c.max - len(c.buff)
}

// Full reports whether the request buffer reached its maximal size.
func (c *Connection) Full() bool {
	return len(c.buff) >= c.max
}

// Append appends data to the request buffer. Data that doesn't fit is cut off, so the
// returned number of appended bytes may be less than len(data).
func (c *Connection) Append(data []byte) int {
	n := min(len(data), c.Free())
	c.buff = append(c.buff, data[:n]...)
	return n
}

// Scanned returns the offset up to which the buffer was already searched for the header
// terminator.
func (c *Connection) Scanned() int {
	return c.scanned
}

func (c *Connection) SetScanned(offset int) {
	c.scanned = offset
}

func (c *Connection) Alive() bool {
	return c.alive
}

// Touch records activity on the connection.
func (c *Connection) Touch(now time.Time) {
	c.lastSeen = now
}

// IdleFor returns how long the connection didn't send anything.
func (c *Connection) IdleFor(now time.Time) time.Duration {
	return now.Sub(c.lastSeen)
}

// Close releases the transport and the request buffer. Closing twice is a no-op.
func (c *Connection) Close() error {
	if !c.alive {
		return nil
	}

	c.alive = false
	c.buff = nil
	return c.socket.Close()
}

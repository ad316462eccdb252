package registry

import (
	"fmt"
	"slices"
	"time"

	"github.com/indigo-web/tinyhttpd/transport"
)

// Registry owns the live connections. Register and Unregister are the only ways to change
// the set. The registry is not safe for concurrent use: it's meant to be driven by a single
// serving loop.
type Registry struct {
	conns map[transport.Handle]*transport.Connection
	order []transport.Handle
}

func New() *Registry {
	return &Registry{
		conns: make(map[transport.Handle]*transport.Connection),
	}
}

// Register adds a freshly accepted connection. Registering the same handle twice is a bug
// in the caller.
func (r *Registry) Register(conn *transport.Connection) {
	if _, found := r.conns[conn.Handle()]; found {
		panic(fmt.Sprintf("BUG: registry: connection %d is already registered", conn.Handle()))
	}

	r.conns[conn.Handle()] = conn
	r.order = append(r.order, conn.Handle())
}

// Unregister closes the connection and only then removes it from the set. Unregistering a
// connection that isn't present is a bug in the caller.
func (r *Registry) Unregister(conn *transport.Connection) error {
	registered, found := r.conns[conn.Handle()]
	if !found || registered != conn {
		panic(fmt.Sprintf("BUG: registry: connection %d is not registered", conn.Handle()))
	}

	err := conn.Close()

	delete(r.conns, conn.Handle())
	// handles are monotonic, so the order slice is always sorted
	if i, ok := slices.BinarySearch(r.order, conn.Handle()); ok {
		r.order = slices.Delete(r.order, i, i+1)
	}

	return err
}

// All returns a snapshot of live connections in acceptance order. The snapshot isn't
// affected by later registrations or removals.
func (r *Registry) All() []*transport.Connection {
	conns := make([]*transport.Connection, len(r.order))
	for i, handle := range r.order {
		conns[i] = r.conns[handle]
	}

	return conns
}

func (r *Registry) Find(handle transport.Handle) (*transport.Connection, bool) {
	conn, found := r.conns[handle]
	return conn, found
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Idle returns the connections that didn't send anything for longer than timeout.
func (r *Registry) Idle(now time.Time, timeout time.Duration) (idle []*transport.Connection) {
	for _, handle := range r.order {
		if conn := r.conns[handle]; conn.IdleFor(now) > timeout {
			idle = append(idle, conn)
		}
	}

	return idle
}

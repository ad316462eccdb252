package transport

import (
	"errors"
	"net"
	"time"
)

// ErrInterrupted is returned by Poller.Wait when the wait was interrupted before anything
// became readable. It is transient: the caller is expected to simply wait again.
var ErrInterrupted = errors.New("readiness wait interrupted")

// Ready is the result of a readiness wait.
type Ready struct {
	// Listener reports whether a new connection can be taken via Poller.Accept.
	Listener bool
	// Conns holds the readable connections, in the order they were passed to Wait.
	Conns []*Connection
}

func (r Ready) Empty() bool {
	return !r.Listener && len(r.Conns) == 0
}

// Poller is a level-triggered readiness notification mechanism over the listener and a set
// of connections.
type Poller interface {
	// Wait blocks until the listener or at least one of the conns becomes readable, or the
	// timeout expires, in which case an empty Ready is returned. Connections that were
	// watched by previous calls but aren't in conns anymore are forgotten.
	Wait(conns []*Connection, timeout time.Duration) (Ready, error)
	// Accept returns the connection that made the listener readable. Must be called only after
	// Wait reported the listener as readable.
	Accept() (net.Conn, error)
	// Interrupt makes the current or the next Wait return ErrInterrupted. Safe to call from any
	// goroutine.
	Interrupt()
	// Close stops watching anything and closes the listener.
	Close() error
}

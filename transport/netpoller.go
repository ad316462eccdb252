package transport

import (
	"errors"
	"net"
	"sync"
	"time"
)

type accepted struct {
	conn net.Conn
	err  error
}

type watch struct {
	conn   *Connection
	resume chan struct{}
	stop   chan struct{}
	fired  bool
}

// NetPoller implements Poller on top of blocking net.Conn and net.Listener. Each watched
// socket gets a helper goroutine, blocked in Socket.Wait, that reports the readiness and then
// stays parked until the next Wait re-arms it. All the data is consumed by the goroutine
// calling Wait, so helpers never race with it.
type NetPoller struct {
	listener  net.Listener
	accepts   chan accepted
	resumeAcc chan struct{}
	events    chan *Connection
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	watched   map[*Connection]*watch
	pending   *accepted
}

func NewNetPoller(listener net.Listener) *NetPoller {
	p := &NetPoller{
		listener:  listener,
		accepts:   make(chan accepted),
		resumeAcc: make(chan struct{}, 1),
		events:    make(chan *Connection),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		watched:   make(map[*Connection]*watch),
	}

	go p.acceptLoop()

	return p
}

func (p *NetPoller) Wait(conns []*Connection, timeout time.Duration) (Ready, error) {
	select {
	case <-p.done:
		return Ready{}, net.ErrClosed
	default:
	}

	p.arm(conns)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	// the previously accepted connection wasn't taken yet
	listener := p.pending != nil

	if !listener && !p.anyFired() {
		select {
		case a := <-p.accepts:
			p.pending = &a
			listener = true
		case c := <-p.events:
			p.fire(c)
		case <-p.wake:
			return Ready{}, ErrInterrupted
		case <-timer.C:
			return Ready{}, nil
		case <-p.done:
			return Ready{}, net.ErrClosed
		}
	}

	p.drain(&listener)

	return p.collect(conns, listener), nil
}

// arm starts watching new connections, re-arms the ones that were reported readable and
// forgets the ones which aren't in the set anymore.
func (p *NetPoller) arm(conns []*Connection) {
	present := make(map[*Connection]struct{}, len(conns))

	for _, c := range conns {
		present[c] = struct{}{}

		w, found := p.watched[c]
		switch {
		case !found:
			w = &watch{
				conn:   c,
				resume: make(chan struct{}, 1),
				stop:   make(chan struct{}),
			}
			p.watched[c] = w
			go p.watchLoop(w)
		case w.fired && !c.socket.Failed():
			w.fired = false
			w.resume <- struct{}{}
		}
	}

	for c, w := range p.watched {
		if _, ok := present[c]; !ok {
			close(w.stop)
			delete(p.watched, c)
		}
	}
}

// anyFired reports whether some connection is still readable since the last Wait. This is
// the case for failed sockets, which stay readable until they are forgotten.
func (p *NetPoller) anyFired() bool {
	for _, w := range p.watched {
		if w.fired {
			return true
		}
	}

	return false
}

func (p *NetPoller) fire(c *Connection) {
	if w, found := p.watched[c]; found {
		w.fired = true
	}
}

// drain collects all the events that are already available without blocking.
func (p *NetPoller) drain(listener *bool) {
	for {
		select {
		case c := <-p.events:
			p.fire(c)
		case a := <-p.accepts:
			// pending is always nil here, as the accept loop is parked until Accept is called
			p.pending = &a
			*listener = true
		default:
			return
		}
	}
}

func (p *NetPoller) collect(conns []*Connection, listener bool) Ready {
	ready := Ready{Listener: listener}

	for _, c := range conns {
		if w, found := p.watched[c]; found && w.fired {
			ready.Conns = append(ready.Conns, c)
		}
	}

	return ready
}

func (p *NetPoller) Accept() (net.Conn, error) {
	if p.pending == nil {
		return nil, errors.New("accept: listener is not readable")
	}

	a := *p.pending
	p.pending = nil
	p.resumeAcc <- struct{}{}

	return a.conn, a.err
}

func (p *NetPoller) Interrupt() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *NetPoller) Close() error {
	err := net.ErrClosed

	p.closeOnce.Do(func() {
		close(p.done)
		err = p.listener.Close()
	})

	return err
}

func (p *NetPoller) acceptLoop() {
	for {
		conn, err := p.listener.Accept()

		select {
		case p.accepts <- accepted{conn, err}:
		case <-p.done:
			if conn != nil {
				_ = conn.Close()
			}

			return
		}

		if errors.Is(err, net.ErrClosed) {
			return
		}

		select {
		case <-p.resumeAcc:
		case <-p.done:
			return
		}
	}
}

func (p *NetPoller) watchLoop(w *watch) {
	for {
		_ = w.conn.socket.Wait()

		select {
		case p.events <- w.conn:
		case <-w.stop:
			return
		case <-p.done:
			return
		}

		if w.conn.socket.Failed() {
			return
		}

		select {
		case <-w.resume:
		case <-w.stop:
			return
		case <-p.done:
			return
		}
	}
}

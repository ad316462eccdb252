package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/http/mime"
	"github.com/indigo-web/tinyhttpd/http/status"
	"github.com/indigo-web/tinyhttpd/internal/logging"
	"github.com/indigo-web/tinyhttpd/internal/protocol/http1"
	"github.com/indigo-web/tinyhttpd/internal/registry"
	"github.com/indigo-web/tinyhttpd/router"
	"github.com/indigo-web/tinyhttpd/transport"
)

type Router interface {
	Route(req http1.Request) router.Decision
}

// Server is the serving loop. Everything happens on the goroutine calling Serve: accepting,
// reading, routing and responding. A connection is fully serviced (answered or dropped)
// before the next one is looked at.
type Server struct {
	cfg        *config.Config
	poller     transport.Poller
	registry   *registry.Registry
	router     Router
	dispatcher *http1.Dispatcher
	logger     logging.Logger
	now        func() time.Time
	lastHandle transport.Handle
}

func New(
	cfg *config.Config,
	poller transport.Poller,
	reg *registry.Registry,
	r Router,
	dispatcher *http1.Dispatcher,
	logger logging.Logger,
) *Server {
	return &Server{
		cfg:        cfg,
		poller:     poller,
		registry:   reg,
		router:     r,
		dispatcher: dispatcher,
		logger:     logging.OrDefault(logger),
		now:        time.Now,
	}
}

// Serve runs the loop until the context is done or the listener fails. In both cases all
// the connections left are dropped and the poller is closed. Nil is returned if the loop was
// stopped via the context.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.poller.Interrupt)
	defer stop()
	defer s.shutdown()

	for ctx.Err() == nil {
		ready, err := s.poller.Wait(s.registry.All(), s.cfg.NET.PollInterval)
		switch {
		case errors.Is(err, transport.ErrInterrupted):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("readiness wait: %w", err)
		}

		if ready.Listener {
			if err = s.accept(); err != nil {
				return err
			}
		}

		for _, conn := range ready.Conns {
			if conn.Alive() {
				s.serve(conn)
			}
		}

		s.sweep()
	}

	return nil
}

func (s *Server) accept() error {
	conn, err := s.poller.Accept()
	if err != nil {
		if isTemporary(err) {
			s.logger.Printf("accept: %s", err)
			return nil
		}

		return fmt.Errorf("accept: %w", err)
	}

	s.lastHandle++
	c := transport.NewConnection(
		s.lastHandle,
		transport.NewSocket(conn, s.cfg.NET.ReadBufferSize),
		s.cfg.NET.MaxRequestSize,
		s.now(),
	)
	s.registry.Register(c)
	s.logger.Printf("new connection from %s", c.Remote())

	return nil
}

func (s *Server) serve(conn *transport.Connection) {
	var data []byte

	if !conn.Full() {
		var err error
		data, err = conn.Socket().Next(conn.Free())
		if err != nil || len(data) == 0 {
			s.logger.Printf("unexpected disconnect from %s", conn.Remote())
			s.drop(conn)
			return
		}
	}

	conn.Touch(s.now())

	result := http1.Append(conn, data)
	switch result.Outcome {
	case http1.Incomplete:
	case http1.Overflow:
		code := s.dispatcher.Reject(conn, status.ErrBadRequest)
		s.logger.Printf("%s: request is too large: %d", conn.Remote(), code)
	case http1.Complete:
		s.respond(conn, result.Request)
	}
}

func (s *Server) respond(conn *transport.Connection, req http1.Request) {
	decision := s.router.Route(req)

	var code status.Code
	switch {
	case decision.Reject != nil:
		code = s.dispatcher.Reject(conn, decision.Reject)
	case decision.Signal == router.Timestamp:
		// the timestamp stands in for the resource, which must still exist
		if info, err := os.Stat(decision.File); err != nil || info.IsDir() {
			code = s.dispatcher.Reject(conn, status.ErrNotFound)
			break
		}

		code = s.dispatcher.String(conn, mime.ByPath(decision.File), s.now().Format(time.ANSIC)+"\n")
	default:
		code = s.dispatcher.File(conn, decision.File)
	}

	s.logger.Printf("%s %s %s: %d", conn.Remote(), req.Method, req.Path, code)
}

// sweep drops connections that were silent for too long.
func (s *Server) sweep() {
	if s.cfg.NET.IdleTimeout <= 0 {
		return
	}

	for _, conn := range s.registry.Idle(s.now(), s.cfg.NET.IdleTimeout) {
		s.logger.Printf("%s: idle for more than %s, dropping", conn.Remote(), s.cfg.NET.IdleTimeout)
		s.drop(conn)
	}
}

func (s *Server) drop(conn *transport.Connection) {
	if err := s.registry.Unregister(conn); err != nil {
		s.logger.Printf("%s: closing connection: %s", conn.Remote(), err)
	}
}

func (s *Server) shutdown() {
	for _, conn := range s.registry.All() {
		s.drop(conn)
	}

	if err := s.poller.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Printf("closing listener: %s", err)
	}
}

// isTemporary reports whether the accept failure concerns a single connection rather than
// the listener, e.g. a client resetting the connection before it was taken.
func isTemporary(err error) bool {
	var temporary interface{ Temporary() bool }
	return errors.As(err, &temporary) && temporary.Temporary()
}

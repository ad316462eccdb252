package tinyhttpd

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/imaging"
	"github.com/indigo-web/tinyhttpd/internal/logging"
	"github.com/indigo-web/tinyhttpd/internal/protocol/http1"
	"github.com/indigo-web/tinyhttpd/internal/registry"
	"github.com/indigo-web/tinyhttpd/internal/server"
	"github.com/indigo-web/tinyhttpd/router"
	"github.com/indigo-web/tinyhttpd/transport"
	"github.com/indigo-web/tinyhttpd/upload"
)

// App is the server: a single listener served by a single loop.
type App struct {
	cfg       *config.Config
	hooks     hooks
	logger    logging.Logger
	echo      io.Writer
	transform imaging.Transform
	stop      chan struct{}
	stopOnce  sync.Once
}

// New returns a new App instance. If cfg is nil, config.Default() is used.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg:    cfg,
		logger: logging.OrDefault(nil),
		echo:   os.Stderr,
		stop:   make(chan struct{}),
	}
}

// Logger replaces the standard logger.
func (a *App) Logger(logger logging.Logger) *App {
	a.logger = logging.OrDefault(logger)
	return a
}

// Echo sets the writer receiving dumps of requests carrying the text field. Nil disables
// the dumps. Defaults to os.Stderr.
func (a *App) Echo(w io.Writer) *App {
	a.echo = w
	return a
}

// Transform replaces the gamma correction applied by image jobs.
func (a *App) Transform(t imaging.Transform) *App {
	a.transform = t
	return a
}

// NotifyOnStart calls the callback with the bound address once the listener is ready.
func (a *App) NotifyOnStart(cb func(addr net.Addr)) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after all the connections are closed and the listener
// is down.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds the listener and runs the loop until the context is done, Shutdown is called
// or the listener fails. Only the latter results in an error.
func (a *App) Serve(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	listener, err := transport.BindTCP(a.cfg.NET.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-a.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	reg := registry.New()
	extractor := upload.NewExtractor(a.cfg, a.transform, a.logger)
	srv := server.New(
		a.cfg,
		transport.NewNetPoller(listener),
		reg,
		router.New(a.cfg, extractor, a.echo, a.logger),
		http1.NewDispatcher(a.cfg, reg, a.logger),
		a.logger,
	)

	a.logger.Printf("listening on %s, serving %s", listener.Addr(), a.cfg.FS.Root)
	if a.hooks.OnStart != nil {
		a.hooks.OnStart(listener.Addr())
	}

	err = srv.Serve(ctx)
	a.logger.Printf("shut down")

	if a.hooks.OnStop != nil {
		a.hooks.OnStop()
	}

	return err
}

// Shutdown stops the loop. All the connections are dropped, including those in the middle
// of a request. The call doesn't wait for Serve to return.
func (a *App) Shutdown() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
}

type hooks struct {
	OnStart func(net.Addr)
	OnStop  func()
}

// Package router decides what a complete request is answered with.
package router

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/http/method"
	"github.com/indigo-web/tinyhttpd/http/status"
	"github.com/indigo-web/tinyhttpd/internal/dump"
	"github.com/indigo-web/tinyhttpd/internal/logging"
	"github.com/indigo-web/tinyhttpd/internal/protocol/http1"
	"github.com/indigo-web/tinyhttpd/upload"
)

// Signal alters how a served resource is rendered.
type Signal uint8

const (
	None Signal = iota
	// Timestamp replaces the body with the current time. The resource is still used to pick
	// the Content-Type.
	Timestamp
)

// Decision is what the request must be answered with. If Reject is set, nothing else
// matters.
type Decision struct {
	// Path is the normalized request path.
	Path string
	// File is the path of the resource on disk.
	File   string
	Signal Signal
	// Upload is the outcome of processing the POST payload. It is NotMultipart for GET.
	Upload upload.Outcome
	Reject error
}

type Extractor interface {
	Extract(contentType string, payload []byte) upload.Outcome
}

type Router struct {
	cfg       *config.Config
	extractor Extractor
	echo      io.Writer
	logger    logging.Logger
}

// New returns a router. Requests delivering the text field are dumped into the echo writer,
// if it isn't nil.
func New(cfg *config.Config, extractor Extractor, echo io.Writer, logger logging.Logger) *Router {
	return &Router{
		cfg:       cfg,
		extractor: extractor,
		echo:      echo,
		logger:    logging.OrDefault(logger),
	}
}

// Route classifies the request. POST payloads are processed as a side effect before the
// resource is resolved, so a POST is answered like a GET to the same path unless the
// upload failed.
func (r *Router) Route(req http1.Request) Decision {
	switch req.Method {
	case method.GET, method.POST:
	default:
		return Decision{Reject: status.ErrBadRequest}
	}

	if !strings.HasPrefix(req.Path, "/") || !req.Terminated {
		return Decision{Reject: status.ErrBadRequest}
	}

	var outcome upload.Outcome
	if req.Method == method.POST {
		outcome = r.upload(req)
		if err := outcome.Err(); err != nil {
			return Decision{Upload: outcome, Reject: err}
		}
	}

	decision := r.resolve(req.Path)
	decision.Upload = outcome

	return decision
}

func (r *Router) upload(req http1.Request) upload.Outcome {
	contentType, _ := req.Header("Content-Type")
	outcome := r.extractor.Extract(contentType, req.Payload)

	if outcome == upload.TextField && r.echo != nil {
		dumped := append(dump.Request(nil, req), '\n')
		if _, err := r.echo.Write(dumped); err != nil {
			r.logger.Printf("echoing request: %s", err)
		}
	}

	return outcome
}

func (r *Router) resolve(path string) Decision {
	path, _, _ = strings.Cut(path, "?")

	signal := None
	switch path {
	case "/":
		path = r.cfg.Path.Index
	case r.cfg.Path.Time:
		path, signal = r.cfg.Path.Index, Timestamp
	}

	if len(path) > r.cfg.Path.MaxLength {
		return Decision{Reject: status.ErrBadRequest}
	}

	if strings.Contains(path, "..") {
		return Decision{Reject: status.ErrNotFound}
	}

	return Decision{
		Path:   path,
		File:   filepath.Join(r.cfg.FS.Root, filepath.FromSlash(path)),
		Signal: signal,
	}
}

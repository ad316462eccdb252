package http1

import (
	"bufio"
	"errors"
	"io"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/http/mime"
	"github.com/indigo-web/tinyhttpd/http/status"
	"github.com/indigo-web/tinyhttpd/internal/logging"
	"github.com/indigo-web/tinyhttpd/internal/registry"
	"github.com/indigo-web/tinyhttpd/transport"
	"github.com/indigo-web/tinyhttpd/transport/dummy"
	"github.com/stretchr/testify/require"
)

type dispatchSuite struct {
	dispatcher *Dispatcher
	registry   *registry.Registry
	client     *dummy.Conn
	conn       *transport.Connection
}

func newDispatchSuite(cfg *config.Config) dispatchSuite {
	reg := registry.New()
	client := dummy.NewConn()
	conn := transport.NewConnection(1, transport.NewSocket(client, 16), cfg.NET.MaxRequestSize, time.Now())
	reg.Register(conn)

	return dispatchSuite{
		dispatcher: NewDispatcher(cfg, reg, logging.Discard),
		registry:   reg,
		client:     client,
		conn:       conn,
	}
}

func (s dispatchSuite) response(t *testing.T) (*stdhttp.Response, string) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(strings.NewReader(s.client.Written())), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, string(body)
}

func (s dispatchSuite) requireDropped(t *testing.T) {
	require.Zero(t, s.registry.Len())
	require.False(t, s.conn.Alive())
	require.Equal(t, 1, s.client.Closed())
}

func TestDispatcher_Reject(t *testing.T) {
	for _, tc := range []struct {
		Err  error
		Code status.Code
		Body string
	}{
		{status.ErrBadRequest, status.BadRequest, "Bad Request"},
		{status.ErrNotFound, status.NotFound, "Not Found"},
		{status.ErrFileExists, status.FileExists, "File Name Exists"},
		{status.ErrNoFileSelected, status.NoFileSelected, "No File Selected"},
		{status.ErrFileTooLarge, status.FileTooLarge, "File Size Too Large"},
		{errors.New("disk is on fire"), status.InternalServerError, string(status.Text(status.InternalServerError))},
	} {
		t.Run(tc.Body, func(t *testing.T) {
			suite := newDispatchSuite(config.Default())
			require.Equal(t, tc.Code, suite.dispatcher.Reject(suite.conn, tc.Err))

			resp, body := suite.response(t)
			require.Equal(t, int(tc.Code), resp.StatusCode)
			require.Equal(t, tc.Body, body)
			require.Equal(t, int64(len(tc.Body)), resp.ContentLength)
			require.True(t, resp.Close)
			require.Contains(t, suite.client.Written(), "\r\nConnection: close\r\n")
			require.Empty(t, resp.Header.Get("Content-Type"))
			suite.requireDropped(t)
		})
	}

	t.Run("exact bytes", func(t *testing.T) {
		suite := newDispatchSuite(config.Default())
		suite.dispatcher.Reject(suite.conn, status.ErrBadRequest)
		want := "HTTP/1.1 400 Bad Request\r\nConnection: close\r\nContent-Length: 11\r\n\r\nBad Request"
		require.Equal(t, want, suite.client.Written())
	})
}

func TestDispatcher_String(t *testing.T) {
	suite := newDispatchSuite(config.Default())
	const stamp = "Sat Oct 17 12:00:00 2026\n"
	require.Equal(t, status.OK, suite.dispatcher.String(suite.conn, mime.HTML, stamp))

	resp, body := suite.response(t)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.Equal(t, stamp, body)
	require.Equal(t, string(mime.HTML), resp.Header.Get("Content-Type"))
	suite.requireDropped(t)
}

func TestDispatcher_File(t *testing.T) {
	dir := t.TempDir()

	t.Run("streams in chunks", func(t *testing.T) {
		cfg := config.Default()
		cfg.NET.WriteBufferSize = 7
		content := strings.Repeat("<p>hello</p>", 100)
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		suite := newDispatchSuite(cfg)
		require.Equal(t, status.OK, suite.dispatcher.File(suite.conn, path))

		resp, body := suite.response(t)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, content, body)
		require.Equal(t, int64(len(content)), resp.ContentLength)
		require.Equal(t, string(mime.HTML), resp.Header.Get("Content-Type"))
		suite.requireDropped(t)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := filepath.Join(dir, "blob.xyz")
		require.NoError(t, os.WriteFile(path, []byte{0, 1, 2}, 0644))

		suite := newDispatchSuite(config.Default())
		suite.dispatcher.File(suite.conn, path)

		resp, body := suite.response(t)
		require.Equal(t, string(mime.OctetStream), resp.Header.Get("Content-Type"))
		require.Equal(t, "\x00\x01\x02", body)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		suite := newDispatchSuite(config.Default())
		require.Equal(t, status.OK, suite.dispatcher.File(suite.conn, path))

		resp, body := suite.response(t)
		require.Equal(t, int64(0), resp.ContentLength)
		require.Empty(t, body)
		suite.requireDropped(t)
	})

	t.Run("missing file", func(t *testing.T) {
		suite := newDispatchSuite(config.Default())
		require.Equal(t, status.NotFound, suite.dispatcher.File(suite.conn, filepath.Join(dir, "nope.html")))

		resp, body := suite.response(t)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Equal(t, "Not Found", body)
		suite.requireDropped(t)
	})

	t.Run("directory", func(t *testing.T) {
		suite := newDispatchSuite(config.Default())
		require.Equal(t, status.NotFound, suite.dispatcher.File(suite.conn, dir))
		suite.requireDropped(t)
	})

	t.Run("client gone", func(t *testing.T) {
		path := filepath.Join(dir, "gone.txt")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

		suite := newDispatchSuite(config.Default())
		require.NoError(t, suite.client.Close())
		require.Equal(t, status.OK, suite.dispatcher.File(suite.conn, path))
		require.Zero(t, suite.registry.Len())
		require.Empty(t, suite.client.Written())
	})
}

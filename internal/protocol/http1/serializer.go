package http1

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/http/mime"
	"github.com/indigo-web/tinyhttpd/http/status"
	"github.com/indigo-web/tinyhttpd/internal/logging"
	"github.com/indigo-web/tinyhttpd/transport"
)

// Dropper removes a connection once it's served.
type Dropper interface {
	Unregister(conn *transport.Connection) error
}

// Dispatcher writes complete responses. Every response is the last one on its connection:
// after the last byte is written (or the write failed), the connection is dropped.
type Dispatcher struct {
	drop   Dropper
	logger logging.Logger
	buff   []byte
	chunk  []byte
}

func NewDispatcher(cfg *config.Config, drop Dropper, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		drop:   drop,
		logger: logging.OrDefault(logger),
		buff:   make([]byte, 0, 256),
		chunk:  make([]byte, cfg.NET.WriteBufferSize),
	}
}

// Reject sends a rejection. The reason phrase of a status.HTTPError is used as the body; any
// other error results in 500 Internal Server Error.
func (d *Dispatcher) Reject(conn *transport.Connection, err error) status.Code {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = status.ErrStorageFailed.(status.HTTPError)
	}

	d.buff = d.appendHead(d.buff[:0], httpErr.Code, httpErr.Message, len(httpErr.Message), "")
	d.buff = append(d.buff, string(httpErr.Message)...)
	d.finish(conn, d.write(conn, d.buff))

	return httpErr.Code
}

// String sends 200 OK with the body.
func (d *Dispatcher) String(conn *transport.Connection, contentType mime.MIME, body string) status.Code {
	d.buff = d.appendHead(d.buff[:0], status.OK, status.Text(status.OK), len(body), contentType)
	d.buff = append(d.buff, body...)
	d.finish(conn, d.write(conn, d.buff))

	return status.OK
}

// File sends 200 OK with the contents of the file, or 404 Not Found if it can't be opened
// as a regular file. The Content-Type is derived from the file's extension.
func (d *Dispatcher) File(conn *transport.Connection, path string) status.Code {
	file, err := os.Open(path)
	if err != nil {
		return d.Reject(conn, status.ErrNotFound)
	}

	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil || !stat.Mode().IsRegular() {
		return d.Reject(conn, status.ErrNotFound)
	}

	length := stat.Size()
	d.buff = d.appendHead(d.buff[:0], status.OK, status.Text(status.OK), int(length), mime.ByPath(path))

	if err = d.write(conn, d.buff); err == nil {
		err = d.stream(conn, file, length)
	}

	d.finish(conn, err)

	return status.OK
}

// stream writes exactly length bytes of the reader in chunks of at most WriteBufferSize.
func (d *Dispatcher) stream(conn *transport.Connection, r io.Reader, length int64) error {
	for length > 0 {
		n, err := r.Read(d.chunk[:min(int64(len(d.chunk)), length)])
		if n > 0 {
			if werr := d.write(conn, d.chunk[:n]); werr != nil {
				return werr
			}

			length -= int64(n)
		}

		switch {
		case err == io.EOF && length > 0:
			return fmt.Errorf("file is %d bytes shorter than announced", length)
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
	}

	return nil
}

func (d *Dispatcher) appendHead(
	buff []byte, code status.Code, reason status.Status, length int, contentType mime.MIME,
) []byte {
	buff = append(buff, "HTTP/1.1 "...)
	buff = append(buff, status.StringCode(code)...)
	buff = append(buff, ' ')
	buff = append(buff, string(reason)...)
	buff = append(buff, "\r\nConnection: close\r\nContent-Length: "...)
	buff = strconv.AppendInt(buff, int64(length), 10)
	buff = append(buff, "\r\n"...)

	if len(contentType) > 0 {
		buff = append(buff, "Content-Type: "...)
		buff = append(buff, contentType...)
		buff = append(buff, "\r\n"...)
	}

	return append(buff, "\r\n"...)
}

func (d *Dispatcher) write(conn *transport.Connection, data []byte) error {
	for len(data) > 0 {
		n, err := conn.Socket().Write(data)
		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (d *Dispatcher) finish(conn *transport.Connection, err error) {
	if err != nil {
		d.logger.Printf("%s: sending response: %s", conn.Remote(), err)
	}

	if err = d.drop.Unregister(conn); err != nil {
		d.logger.Printf("%s: closing connection: %s", conn.Remote(), err)
	}
}

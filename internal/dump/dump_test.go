package dump

import (
	"testing"
	"time"

	"github.com/indigo-web/tinyhttpd/internal/protocol/http1"
	"github.com/indigo-web/tinyhttpd/transport"
	"github.com/indigo-web/tinyhttpd/transport/dummy"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) http1.Request {
	conn := transport.NewConnection(1, transport.NewSocket(dummy.NewConn(), 16), 1024, time.Now())
	result := http1.Append(conn, []byte(raw))
	require.Equal(t, http1.Complete, result.Outcome)
	return result.Request
}

func TestRequest(t *testing.T) {
	t.Run("verbatim", func(t *testing.T) {
		const raw = "POST / HTTP/1.1\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello"
		require.Equal(t, raw, string(Request(nil, parse(t, raw))))
	})

	t.Run("normalized headers", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nhost:localhost\r\nAccept:\t*/* \r\nbroken\r\n\r\n"
		want := "GET / HTTP/1.1\r\nhost: localhost\r\nAccept: */*\r\nbroken\r\n\r\n"
		require.Equal(t, want, string(Request(nil, parse(t, raw))))
	})

	t.Run("appends", func(t *testing.T) {
		const raw = "GET / HTTP/1.1\r\n\r\n"
		require.Equal(t, ">>> "+raw, string(Request([]byte(">>> "), parse(t, raw))))
	})
}

package transport

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/indigo-web/tinyhttpd/transport/dummy"
	"github.com/stretchr/testify/require"
)

func TestSocket(t *testing.T) {
	t.Run("chunks", func(t *testing.T) {
		s := NewSocket(dummy.NewConn("abc", "def"), 16)

		require.NoError(t, s.Wait())
		data, err := s.Next(2)
		require.NoError(t, err)
		require.Equal(t, "ab", string(data))

		data, err = s.Next(10)
		require.NoError(t, err)
		require.Equal(t, "c", string(data))

		require.NoError(t, s.Wait())
		data, err = s.Next(10)
		require.NoError(t, err)
		require.Equal(t, "def", string(data))
		require.False(t, s.Failed())

		require.ErrorIs(t, s.Wait(), io.EOF)
		require.True(t, s.Failed())
		_, err = s.Next(10)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("write and close", func(t *testing.T) {
		conn := dummy.NewConn()
		s := NewSocket(conn, 16)
		_, err := s.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, s.Close())
		require.Equal(t, "hello", conn.Written())
		require.Equal(t, 1, conn.Closed())
	})
}

func TestConnection(t *testing.T) {
	conn := dummy.NewConn()
	c := NewConnection(1, NewSocket(conn, 16), 8, time.Now())
	require.Equal(t, "127.0.0.1:50000", c.Remote())
	require.True(t, c.Alive())

	require.Equal(t, 5, c.Append([]byte("hello")))
	require.Equal(t, 3, c.Free())
	require.Equal(t, 3, c.Append([]byte("world")))
	require.True(t, c.Full())
	require.Equal(t, "hellowor", string(c.Bytes()))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.False(t, c.Alive())
	require.Equal(t, 1, conn.Closed())
}

func readAll(t *testing.T, p Poller, c *Connection, want int) string {
	var got []byte

	for len(got) < want {
		ready, err := p.Wait([]*Connection{c}, time.Second)
		require.NoError(t, err)
		require.Equal(t, []*Connection{c}, ready.Conns)

		data, err := c.Socket().Next(c.Free())
		require.NoError(t, err)
		got = append(got, data...)
	}

	return string(got)
}

func TestNetPoller(t *testing.T) {
	l, err := BindTCP("127.0.0.1:0")
	require.NoError(t, err)
	p := NewNetPoller(l)
	defer func() {
		_ = p.Close()
	}()

	t.Run("timeout", func(t *testing.T) {
		ready, err := p.Wait(nil, 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ready.Empty())
	})

	t.Run("interrupt", func(t *testing.T) {
		p.Interrupt()
		_, err := p.Wait(nil, time.Second)
		require.ErrorIs(t, err, ErrInterrupted)
	})

	t.Run("accept without readiness", func(t *testing.T) {
		_, err := p.Accept()
		require.Error(t, err)
	})

	t.Run("accept, read and disconnect", func(t *testing.T) {
		client, err := net.Dial("tcp", l.Addr().String())
		require.NoError(t, err)

		ready, err := p.Wait(nil, time.Second)
		require.NoError(t, err)
		require.True(t, ready.Listener)

		conn, err := p.Accept()
		require.NoError(t, err)
		c := NewConnection(1, NewSocket(conn, 1024), 1024, time.Now())

		_, err = client.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, "hello", readAll(t, p, c, len("hello")))

		ready, err = p.Wait([]*Connection{c}, 20*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ready.Empty())

		require.NoError(t, client.Close())
		ready, err = p.Wait([]*Connection{c}, time.Second)
		require.NoError(t, err)
		require.Equal(t, []*Connection{c}, ready.Conns)
		_, err = c.Socket().Next(c.Free())
		require.Error(t, err)

		// a failed socket stays readable until it's forgotten
		ready, err = p.Wait([]*Connection{c}, time.Second)
		require.NoError(t, err)
		require.Equal(t, []*Connection{c}, ready.Conns)

		require.NoError(t, c.Close())
		ready, err = p.Wait(nil, 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ready.Empty())
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, p.Close())
		_, err := p.Wait(nil, time.Second)
		require.ErrorIs(t, err, net.ErrClosed)
	})
}

package ferrylib

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type pipeStream struct {
	net.Conn
}

func (s *pipeStream) Open(deadline time.Time) error { return nil }
func (s *pipeStream) Done(deadline time.Time) error { return s.Close() }

func newPipePair() (*pipeStream, net.Conn) {
	a, b := net.Pipe()
	return &pipeStream{Conn: a}, b
}

func feed(t testing.TB, w net.Conn, payload string, closeAfter bool) {
	t.Helper()
	go func() {
		_, _ = w.Write([]byte(payload))
		if closeAfter {
			_ = w.Close()
		}
	}()
}

func TestParseContentLength(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close(); _ = w.Close() }()

	feed(t, w, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello", false)

	p := NewParser(stream, 0)
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, "OK", res.Status)
	require.Equal(t, "HTTP/1.1", res.Proto)
	require.Equal(t, "text/plain", res.Header.Get("content-type"))
	require.Equal(t, []byte("hello"), res.Body)
	require.True(t, res.keepAlive)
}

func TestParseChunked(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close(); _ = w.Close() }()

	feed(t, w, "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n"+
		"5;ext=1\r\nhello\r\n6\r\n world\r\n0\r\nX-Trailer: ignored\r\n\r\n", false)

	p := NewParser(stream, 0)
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), res.Body)
	require.True(t, res.keepAlive)
}

func TestParseNoBodyStatuses(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, payload := range []string{
		"HTTP/1.1 204 No Content\r\n\r\n",
		"HTTP/1.1 304 Not Modified\r\nContent-Length: 10\r\n\r\n",
	} {
		stream, w := newPipePair()
		feed(t, w, payload, false)

		p := NewParser(stream, 0)
		res, err := p.Parse(time.Now().Add(1 * time.Second))
		require.NoError(t, err)
		require.Empty(t, res.Body)

		_ = stream.Close()
		_ = w.Close()
	}
}

func TestParseSkipBody(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close(); _ = w.Close() }()

	feed(t, w, "HTTP/1.1 200 OK\r\nContent-Length: 1024\r\n\r\n", false)

	p := NewParser(stream, 0)
	p.SkipBody = true
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.Empty(t, res.Body)
	require.False(t, p.SkipBody)
}

func TestParseSwitchingProtocols(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close(); _ = w.Close() }()

	feed(t, w, "HTTP/1.1 101 Switching Protocols\r\nUpgrade: echo\r\nConnection: Upgrade\r\n\r\n", false)

	p := NewParser(stream, 0)
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.Equal(t, 101, res.StatusCode)
	require.Empty(t, res.Body)
	require.Equal(t, "echo", res.Header.Get("Upgrade"))
	require.True(t, res.keepAlive)
}

func TestParseCloseDelimited(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close() }()

	feed(t, w, "HTTP/1.1 200 OK\r\n\r\nall the way to eof", true)

	p := NewParser(stream, 0)
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.Equal(t, []byte("all the way to eof"), res.Body)
	require.False(t, res.keepAlive)
}

func TestParseConnectionClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream, w := newPipePair()
	defer func() { _ = stream.Close(); _ = w.Close() }()

	feed(t, w, "HTTP/1.1 200 OK\r\nConnection: close\r\nContent-Length: 2\r\n\r\nok", false)

	p := NewParser(stream, 0)
	res, err := p.Parse(time.Now().Add(1 * time.Second))
	require.NoError(t, err)
	require.False(t, res.keepAlive)
}

func TestParseMalformed(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, payload := range []string{
		"garbage\r\n\r\n",
		"HTTP/1.1 abc OK\r\n\r\n",
		"HTTP/2 200 OK\r\n\r\n",
		"HTTP/1.1 200 OK\r\nno colon here\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: -4\r\n\r\n",
	} {
		stream, w := newPipePair()
		feed(t, w, payload, false)

		p := NewParser(stream, 0)
		_, err := p.Parse(time.Now().Add(1 * time.Second))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrMalformedResponse), "payload %q: %v", payload, err)

		_ = stream.Close()
		_ = w.Close()
	}
}

func TestCanonicalHeaderKey(t *testing.T) {
	require.Equal(t, "Content-Type", canonicalHeaderKey("content-type"))
	require.Equal(t, "Sec-Websocket-Accept", canonicalHeaderKey("SEC-WEBSOCKET-ACCEPT"))
	require.Equal(t, "Host", canonicalHeaderKey("host"))
}

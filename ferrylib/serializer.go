package ferrylib

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/lithdew/bytesutil"
	"github.com/valyala/bytebufferpool"
)

// Serializer writes request heads and bodies onto a stream.
type Serializer struct {
	stream DuplexStream
	bw     *bufio.Writer
}

func NewSerializer(stream DuplexStream, bufferSize int) *Serializer {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Serializer{stream: stream, bw: bufio.NewWriterSize(stream, bufferSize)}
}

func (s *Serializer) Serialize(req *Request, deadline time.Time) error {
	if err := s.stream.SetWriteDeadline(deadline); err != nil {
		return err
	}

	head := bytebufferpool.Get()
	defer bytebufferpool.Put(head)

	method := req.Method
	if method == "" {
		method = "GET"
	}
	path := req.Path
	if path == "" {
		path = "/"
	}

	_, _ = head.Write(bytesutil.Slice(method))
	_ = head.WriteByte(' ')
	_, _ = head.Write(bytesutil.Slice(path))
	_, _ = head.WriteString(" HTTP/1.1\r\n")

	writeHeaderLine(head, "Host", req.Host)
	writeHeaderLine(head, "User-Agent", req.UserAgent)

	for name, value := range req.Header {
		if skipCallerHeader(name) {
			continue
		}
		writeHeaderLine(head, name, value)
	}

	if len(req.Body) > 0 || methodCarriesBody(method) {
		writeHeaderLine(head, "Content-Length", strconv.Itoa(len(req.Body)))
	}
	_, _ = head.WriteString("\r\n")

	if _, err := s.bw.Write(head.B); err != nil {
		return err
	}
	if len(req.Body) > 0 {
		if _, err := s.bw.Write(req.Body); err != nil {
			return err
		}
	}
	if err := s.bw.Flush(); err != nil {
		return err
	}
	return s.stream.SetWriteDeadline(zeroTime)
}

func writeHeaderLine(buf *bytebufferpool.ByteBuffer, name, value string) {
	_, _ = buf.Write(bytesutil.Slice(name))
	_, _ = buf.WriteString(": ")
	_, _ = buf.Write(bytesutil.Slice(value))
	_, _ = buf.WriteString("\r\n")
}

// Host, User-Agent and Content-Length are owned by the serializer.
func skipCallerHeader(name string) bool {
	return strings.EqualFold(name, "Host") ||
		strings.EqualFold(name, "User-Agent") ||
		strings.EqualFold(name, "Content-Length")
}

func methodCarriesBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

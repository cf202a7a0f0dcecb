package ferrylib

import "time"

// Conn couples a stream with its serializer and parser. A Conn is owned by
// exactly one sender between borrow and release.
type Conn struct {
	stream     DuplexStream
	serializer *Serializer
	parser     *Parser
}

func NewConn(stream DuplexStream, serializerBufferSize, parserBufferSize int) *Conn {
	return &Conn{
		stream:     stream,
		serializer: NewSerializer(stream, serializerBufferSize),
		parser:     NewParser(stream, parserBufferSize),
	}
}

func (c *Conn) Stream() DuplexStream { return c.stream }

func (c *Conn) done(deadline time.Time) error { return c.stream.Done(deadline) }

func (c *Conn) close() { _ = c.stream.Close() }

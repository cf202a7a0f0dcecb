package ferrylib

import (
	"net"
	"time"
)

// DuplexStream is a bidirectional byte stream to a single origin. Open must
// be called before any reads or writes, Done half-closes the write side
// where the transport supports it and then closes the stream once the
// caller is finished with it.
type DuplexStream interface {
	net.Conn

	Open(deadline time.Time) error
	Done(deadline time.Time) error
}

type ConnState int

const (
	StateNew ConnState = iota
	StateClosed
)

type ConnStateHandler interface {
	HandleConnState(conn *Conn, state ConnState)
}

type ConnStateHandlerFunc func(conn *Conn, state ConnState)

func (fn ConnStateHandlerFunc) HandleConnState(conn *Conn, state ConnState) { fn(conn, state) }

var DefaultConnStateHandler ConnStateHandler = ConnStateHandlerFunc(func(conn *Conn, state ConnState) {})

type ConnFactory interface {
	NewConn() (*Conn, error)
}

type ConnFactoryFunc func() (*Conn, error)

func (fn ConnFactoryFunc) NewConn() (*Conn, error) { return fn() }

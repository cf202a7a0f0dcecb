package ferrylib

import (
	"context"
	"crypto/tls"
	"net"
	"time"
)

type closeWriter interface {
	CloseWrite() error
}

type tcpStream struct {
	net.Conn
	addr string
}

func newTCPStream(host, port string, resolveTimeout time.Duration) (*tcpStream, error) {
	addr, err := resolveAddr(host, port, resolveTimeout)
	if err != nil {
		return nil, err
	}
	return &tcpStream{addr: addr}, nil
}

func (s *tcpStream) Open(deadline time.Time) error {
	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.Dial("tcp", s.addr)
	if err != nil {
		return err
	}
	s.Conn = conn
	return nil
}

func (s *tcpStream) Done(deadline time.Time) error { return closeStream(s.Conn, deadline) }

type tlsStream struct {
	net.Conn
	addr   string
	config *tls.Config
}

func newTLSStream(host, port string, resolveTimeout time.Duration) (*tlsStream, error) {
	addr, err := resolveAddr(host, port, resolveTimeout)
	if err != nil {
		return nil, err
	}
	config := &tls.Config{
		ServerName: host,
		NextProtos: []string{"http/1.1"},
	}
	return &tlsStream{addr: addr, config: config}, nil
}

func (s *tlsStream) Open(deadline time.Time) error {
	dialer := net.Dialer{Deadline: deadline}
	raw, err := dialer.Dial("tcp", s.addr)
	if err != nil {
		return err
	}
	conn := tls.Client(raw, s.config)
	if err := conn.SetDeadline(deadline); err != nil {
		_ = raw.Close()
		return err
	}
	if err := conn.Handshake(); err != nil {
		_ = raw.Close()
		return err
	}
	if err := conn.SetDeadline(zeroTime); err != nil {
		_ = conn.Close()
		return err
	}
	s.Conn = conn
	return nil
}

func (s *tlsStream) Done(deadline time.Time) error { return closeStream(s.Conn, deadline) }

func resolveAddr(host, port string, timeout time.Duration) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return net.JoinHostPort(host, port), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(addrs[0], port), nil
}

func closeStream(conn net.Conn, deadline time.Time) error {
	if conn == nil {
		return nil
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return err
	}
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err != nil {
			_ = conn.Close()
			return err
		}
	}
	return conn.Close()
}

package ferrylib

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jpillora/backoff"
)

const DefaultUserAgent = "ferry/1.1"

// Client sends requests to a single origin over a bounded pool of
// connections. Safe for concurrent use.
type Client struct {
	host   string
	port   int
	secure bool

	conf   Configuration
	logger Logger
	state  ConnStateHandler

	pool *Pool
}

func NewClient(rawurl string, logger Logger, conf *Configuration) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	c := &Client{logger: logger}

	switch u.Scheme {
	case "http":
		c.port = 80
	case "https":
		c.port = 443
		c.secure = true
	default:
		return nil, ErrInvalidScheme
	}

	c.host = u.Hostname()
	if c.host == "" {
		return nil, ErrHostRequired
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: bad port %q", ErrInvalidURL, port)
		}
		c.port = n
	}

	if c.logger == nil {
		c.logger = DefaultLogger
	}
	if conf != nil {
		c.conf = *conf
	}
	c.conf = c.conf.withDefaults()
	c.state = c.conf.ConnState

	pool, err := newPool(c.conf.PoolSizeMin, c.conf.PoolSizeMax, ConnFactoryFunc(c.newConn))
	if err != nil {
		return nil, err
	}
	c.pool = pool

	return c, nil
}

func (c *Client) newConn() (*Conn, error) {
	port := strconv.Itoa(c.port)

	var stream DuplexStream
	var err error
	if c.secure {
		stream, err = newTLSStream(c.host, port, c.conf.AddressResolutionTimeout)
	} else {
		stream, err = newTCPStream(c.host, port, c.conf.AddressResolutionTimeout)
	}
	if err != nil {
		return nil, err
	}

	if err := stream.Open(time.Now().Add(c.conf.ConnectionTimeout)); err != nil {
		return nil, err
	}

	conn := NewConn(stream, c.conf.SerializerBufferSize, c.conf.ParserBufferSize)
	c.state.HandleConnState(conn, StateNew)
	return conn, nil
}

// Send performs one exchange against the origin. Connections that fail
// mid-exchange are discarded and the request is retried on a fresh borrow
// until it succeeds, the attempt budget runs out, or a borrow fails.
func (c *Client) Send(req *Request) (*Response, error) {
	req.Host = net.JoinHostPort(c.host, strconv.Itoa(c.port))
	req.UserAgent = DefaultUserAgent

	b := &backoff.Backoff{
		Factor: 1.25,
		Jitter: true,
		Min:    500 * time.Millisecond,
		Max:    1 * time.Second,
	}

	for attempt := 1; ; attempt++ {
		conn, err := c.pool.borrow(time.Now().Add(c.conf.BorrowTimeout))
		if err != nil {
			return nil, err
		}

		res, err := c.exchange(conn, req)
		if err == nil {
			return res, nil
		}

		c.disposeConn(conn)
		c.logger.Printf("ferry: attempt %d against %s failed: %v", attempt, req.Host, err)

		if c.conf.MaxAttempts > 0 && attempt >= c.conf.MaxAttempts && attempt > 1 {
			return nil, err
		}
		if attempt > 1 {
			time.Sleep(b.Duration())
		}
	}
}

func (c *Client) exchange(conn *Conn, req *Request) (*Response, error) {
	if err := conn.serializer.Serialize(req, time.Now().Add(c.conf.SerializeTimeout)); err != nil {
		return nil, err
	}

	conn.parser.SkipBody = req.Method == "HEAD"

	res, err := conn.parser.Parse(time.Now().Add(c.conf.ParseTimeout))
	if err != nil {
		return nil, err
	}

	if req.UpgradeConnection != nil {
		if err := req.UpgradeConnection(res, conn.stream); err != nil {
			return nil, err
		}
		if err := conn.done(time.Now().Add(c.conf.CloseConnectionTimeout)); err != nil {
			return nil, err
		}
		c.disposeConn(conn)
		return res, nil
	}

	if res.keepAlive {
		c.pool.release(conn)
	} else {
		c.disposeConn(conn)
	}
	return res, nil
}

func (c *Client) disposeConn(conn *Conn) {
	c.pool.dispose(conn)
	c.state.HandleConnState(conn, StateClosed)
}

// Shutdown closes the idle connections. Connections borrowed at the time of
// the call are not closed by it; when their exchanges finish they go back to
// the pool like any other.
func (c *Client) Shutdown() { c.pool.shutdown() }

func (c *Client) PoolMetricsString() string {
	return fmt.Sprintf("{\"ConnPool\" = %s, \"TimerPool\" = %s}", c.pool.m.metricsString(), timerPool.m.metricsString())
}

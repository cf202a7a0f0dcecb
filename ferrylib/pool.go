package ferrylib

import (
	"sync"
	"time"
)

// Pool opens lo connections to a single origin up front and grows to at
// most hi; disposed connections are replaced only when a borrow needs one.
// Idle connections are reused most-recently-released first. Borrowers past the
// high bound wait on an unbuffered rendezvous channel.
type Pool struct {
	lo, hi  int
	factory ConnFactory

	mu        sync.Mutex
	available []*Conn
	borrowed  int
	waiting   int
	waitList  chan struct{}

	m *PoolMetrics
}

func newPool(lo, hi int, factory ConnFactory) (*Pool, error) {
	if lo < 0 || lo > hi {
		return nil, ErrInvalidPoolSize
	}
	p := &Pool{
		lo:       lo,
		hi:       hi,
		factory:  factory,
		waitList: make(chan struct{}),
		m:        &PoolMetrics{},
	}
	for i := 0; i < lo; i++ {
		conn, err := factory.NewConn()
		if err != nil {
			for _, c := range p.available {
				c.close()
			}
			return nil, err
		}
		p.m.incNew()
		p.available = append(p.available, conn)
	}
	return p, nil
}

func (p *Pool) borrow(deadline time.Time) (*Conn, error) {
	waitCount := 0
	p.mu.Lock()
	defer func() {
		p.waiting -= waitCount
		p.mu.Unlock()
	}()

	for {
		if n := len(p.available); n > 0 {
			conn := p.available[n-1]
			p.available = p.available[:n-1]
			p.borrowed++
			p.m.incReuse()
			return conn, nil
		}

		if p.borrowed < p.hi {
			// Count the in-flight construction against the high bound
			// before releasing the lock.
			p.borrowed++
			p.mu.Unlock()
			conn, err := p.factory.NewConn()
			p.mu.Lock()
			if err != nil {
				p.borrowed--
				return nil, err
			}
			p.m.incNew()
			return conn, nil
		}

		waitCount++
		p.waiting++
		p.mu.Unlock()
		err := p.await(deadline)
		p.mu.Lock()
		if err != nil {
			return nil, err
		}
	}
}

func (p *Pool) await(deadline time.Time) error {
	timeout := time.Until(deadline)
	if timeout <= 0 {
		return ErrBorrowTimeout
	}
	timer := timerPool.acquire(timeout)
	defer timerPool.release(timer)

	select {
	case <-p.waitList:
		return nil
	case <-timer.C:
		return ErrBorrowTimeout
	}
}

func (p *Pool) release(conn *Conn) {
	p.mu.Lock()
	p.available = append(p.available, conn)
	p.borrowed--
	waiting := p.waiting
	p.mu.Unlock()

	p.m.incPut()

	if waiting > 0 {
		select {
		case p.waitList <- struct{}{}:
		default:
		}
	}
}

func (p *Pool) dispose(conn *Conn) {
	p.mu.Lock()
	p.borrowed--
	p.mu.Unlock()
	conn.close()
}

func (p *Pool) shutdown() {
	p.mu.Lock()
	idle := p.available
	p.available = nil
	p.mu.Unlock()

	for _, conn := range idle {
		conn.close()
	}
}

func (p *Pool) stats() (available, borrowed, waiting int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available), p.borrowed, p.waiting
}

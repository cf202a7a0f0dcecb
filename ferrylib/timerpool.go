package ferrylib

import (
	"sync"
	"time"
)

var zeroTime time.Time

var timerPool = &TimerPool{m: &PoolMetrics{}}

type TimerPool struct {
	sp sync.Pool
	m  *PoolMetrics
}

func (p *TimerPool) acquire(timeout time.Duration) *time.Timer {
	v := p.sp.Get()
	if v == nil {
		p.m.incNew()
		return time.NewTimer(timeout)
	}
	p.m.incReuse()
	t := v.(*time.Timer)
	t.Reset(timeout)
	return t
}

func (p *TimerPool) release(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	p.m.incPut()
	p.sp.Put(t)
}

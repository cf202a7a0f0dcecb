package ferrylib

import (
	"fmt"
	"sync/atomic"
)

// For the timer pool, na + nr equal the total number of acquires and
// na + nr - np equal the number still lent out. The connection pool also
// counts its eager constructions in na and does not count disposed
// connections in np.
type PoolMetrics struct {
	na uint32 // the number of the new objects acquired
	nr uint32 // the number of the reused objects acquired
	np uint32 // the number of the objects put back
}

func (m *PoolMetrics) incNew()   { atomic.AddUint32(&m.na, 1) }
func (m *PoolMetrics) incReuse() { atomic.AddUint32(&m.nr, 1) }
func (m *PoolMetrics) incPut()   { atomic.AddUint32(&m.np, 1) }

func (m *PoolMetrics) snapshot() (na, nr, np uint32) {
	return atomic.LoadUint32(&m.na), atomic.LoadUint32(&m.nr), atomic.LoadUint32(&m.np)
}

func (m *PoolMetrics) metricsString() string {
	na, nr, np := m.snapshot()
	return fmt.Sprintf("[ %v|%v|%v ]", na, nr, np)
}

package ferrylib

import "time"

const defaultBufferSize = 4096

// Configuration carries the tunables for a Client. The zero value is usable,
// every field falls back to a sensible default.
type Configuration struct {
	// Pool size bounds. A PoolSizeMax of zero selects the default range [5, 10].
	PoolSizeMin int
	PoolSizeMax int

	// Buffer sizes for the per-connection reader and writer.
	ParserBufferSize     int
	SerializerBufferSize int

	// Deadlines for the individual phases of a request.
	AddressResolutionTimeout time.Duration
	ConnectionTimeout        time.Duration
	CloseConnectionTimeout   time.Duration
	BorrowTimeout            time.Duration
	ParseTimeout             time.Duration
	SerializeTimeout         time.Duration

	// MaxAttempts bounds how many attempts a single Send makes before it
	// surfaces the last I/O error. Zero means retry without bound; a value
	// of 1 still allows one retry.
	MaxAttempts int

	// ConnState is invoked as connections are established and torn down.
	ConnState ConnStateHandler
}

func (c Configuration) withDefaults() Configuration {
	if c.PoolSizeMax == 0 {
		c.PoolSizeMin = 5
		c.PoolSizeMax = 10
	}
	if c.ParserBufferSize <= 0 {
		c.ParserBufferSize = defaultBufferSize
	}
	if c.SerializerBufferSize <= 0 {
		c.SerializerBufferSize = defaultBufferSize
	}
	if c.AddressResolutionTimeout <= 0 {
		c.AddressResolutionTimeout = 1 * time.Minute
	}
	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = 1 * time.Minute
	}
	if c.CloseConnectionTimeout <= 0 {
		c.CloseConnectionTimeout = 1 * time.Minute
	}
	if c.BorrowTimeout <= 0 {
		c.BorrowTimeout = 5 * time.Minute
	}
	if c.ParseTimeout <= 0 {
		c.ParseTimeout = 5 * time.Minute
	}
	if c.SerializeTimeout <= 0 {
		c.SerializeTimeout = 5 * time.Minute
	}
	if c.ConnState == nil {
		c.ConnState = DefaultConnStateHandler
	}
	return c
}

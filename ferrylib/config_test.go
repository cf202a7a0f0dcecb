package ferrylib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigurationDefaults(t *testing.T) {
	c := Configuration{}.withDefaults()

	require.Equal(t, 5, c.PoolSizeMin)
	require.Equal(t, 10, c.PoolSizeMax)
	require.Equal(t, defaultBufferSize, c.ParserBufferSize)
	require.Equal(t, defaultBufferSize, c.SerializerBufferSize)
	require.Equal(t, 1*time.Minute, c.AddressResolutionTimeout)
	require.Equal(t, 1*time.Minute, c.ConnectionTimeout)
	require.Equal(t, 1*time.Minute, c.CloseConnectionTimeout)
	require.Equal(t, 5*time.Minute, c.BorrowTimeout)
	require.Equal(t, 5*time.Minute, c.ParseTimeout)
	require.Equal(t, 5*time.Minute, c.SerializeTimeout)
	require.Equal(t, 0, c.MaxAttempts)
	require.NotNil(t, c.ConnState)
}

func TestConfigurationExplicitBounds(t *testing.T) {
	c := Configuration{PoolSizeMin: 0, PoolSizeMax: 3, BorrowTimeout: time.Second}.withDefaults()

	require.Equal(t, 0, c.PoolSizeMin)
	require.Equal(t, 3, c.PoolSizeMax)
	require.Equal(t, time.Second, c.BorrowTimeout)
}

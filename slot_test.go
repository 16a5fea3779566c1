package broadcastring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotWriteProtocol(t *testing.T) {
	var s Slot[string]

	require.Equal(t, uint64(0), s.loadEpoch(), "fresh slot should have epoch 0, sentinel clear")

	const capacity = 8
	s.write("first", capacity, capacity)
	require.Equal(t, uint64(capacity), s.loadEpoch())
	require.Equal(t, "first", s.read())

	s.write("second", 2*capacity, capacity)
	require.Equal(t, uint64(2*capacity), s.loadEpoch())
	require.Equal(t, "second", s.read())
}

func TestEpochHelpers(t *testing.T) {
	require.True(t, inProgress(sentinelBit|64))
	require.False(t, inProgress(64))
	require.Equal(t, uint64(64), epochPart(sentinelBit|64))
	require.Equal(t, uint64(64), epochPart(64))
}

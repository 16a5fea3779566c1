package broadcastring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUpPowerOfTwo(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{1, 1},
		{5, 8},
		{15, 16},
		{16, 16},
		{17, 32},
		{1000, 1024},
		{1_152_921_504_606_846_000, 1_152_921_504_606_846_976},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.want, roundUpPowerOfTwo(tc.in), "roundUpPowerOfTwo(%d)", tc.in)
	}
}

func TestNewRingCapacityRounding(t *testing.T) {
	r := NewRing[int](100)
	require.Equal(t, uint64(128), r.Size())
}

func TestNewRingZeroCapacityPanics(t *testing.T) {
	require.Panics(t, func() {
		NewRing[int](0)
	})
}

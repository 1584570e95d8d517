package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardohn/wisard/filter"
)

func TestBloom_NoFalseNegatives(t *testing.T) {
	f := filter.NewBloom(128, 0.01, 0)
	for addr := uint32(0); addr < 100; addr++ {
		f.Write(addr)
	}
	for addr := uint32(0); addr < 100; addr++ {
		assert.True(t, f.Contains(addr), "addr %d was written", addr)
	}
}

func TestBloom_FalsePositiveRateBounded(t *testing.T) {
	f := filter.NewBloom(128, 0.01, 0)
	for addr := uint32(0); addr < 100; addr++ {
		f.Write(addr)
	}
	// 1000 unwritten addresses at a 1% target rate: allow a generous margin
	// over the expected ~10 false positives.
	var fps int
	for addr := uint32(1000); addr < 2000; addr++ {
		if f.Contains(addr) {
			fps++
		}
	}
	assert.Less(t, fps, 50, "false positives: %d", fps)
}

func TestBloom_CountNeverUndercounts(t *testing.T) {
	f := filter.NewBloom(64, 0.01, 0)
	f.Write(5)
	f.Write(5)
	f.Write(9)
	assert.GreaterOrEqual(t, f.Count(5), uint32(2))
	assert.GreaterOrEqual(t, f.Count(9), uint32(1))
}

func TestBloom_BleachThreshold(t *testing.T) {
	f := filter.NewBloom(64, 0.001, 1)
	f.Write(7)
	assert.False(t, f.Contains(7), "one write must not pass threshold 1")
	f.Write(7)
	assert.True(t, f.Contains(7))
}

func TestBloom_StartsEmpty(t *testing.T) {
	f := filter.NewBloom(64, 0.01, 0)
	for addr := uint32(0); addr < 256; addr++ {
		assert.False(t, f.Contains(addr))
	}
	assert.Equal(t, uint32(0), f.Count(0))
}

func TestBloom_StateRoundTrip(t *testing.T) {
	f := filter.NewBloom(64, 0.01, 0)
	for _, addr := range []uint32{1, 2, 3, 500, 70000} {
		f.Write(addr)
	}

	g, err := filter.FromState(f.State())
	require.NoError(t, err)
	for addr := uint32(0); addr < 1000; addr++ {
		assert.Equal(t, f.Contains(addr), g.Contains(addr), "addr %d", addr)
	}
}

func TestBloom_InvalidSizing(t *testing.T) {
	assert.Panics(t, func() { filter.NewBloom(0, 0.01, 0) })
	assert.Panics(t, func() { filter.NewBloom(64, 0, 0) })
	assert.Panics(t, func() { filter.NewBloom(64, 1, 0) })
}

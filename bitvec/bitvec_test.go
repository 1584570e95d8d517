package bitvec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardohn/wisard/bitvec"
)

func TestNew_ZeroVector(t *testing.T) {
	v := bitvec.New(100)
	require.Equal(t, 100, v.Len())
	assert.Equal(t, 0, v.OnesCount())
	for i := 0; i < 100; i++ {
		assert.False(t, v.Get(i))
	}
}

func TestFromBools_RoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true, true}
	v := bitvec.FromBools(bits)
	require.Equal(t, len(bits), v.Len())
	assert.Equal(t, bits, v.Bools())
	assert.Equal(t, 5, v.OnesCount())
}

func TestSet_Get(t *testing.T) {
	v := bitvec.New(70)
	v.Set(0)
	v.Set(63)
	v.Set(64)
	v.Set(69)
	for i := 0; i < 70; i++ {
		want := i == 0 || i == 63 || i == 64 || i == 69
		assert.Equal(t, want, v.Get(i), "bit %d", i)
	}
	assert.Equal(t, 4, v.OnesCount())
}

func TestFromWords_PaddingZeroed(t *testing.T) {
	// n=65: the second word has only bit 0 meaningful; the rest must be
	// dropped so OnesCount never sees padding.
	v := bitvec.FromWords(65, []uint64{^uint64(0), ^uint64(0)})
	assert.Equal(t, 65, v.OnesCount())
}

func TestFromWords_LengthChecked(t *testing.T) {
	assert.Panics(t, func() { bitvec.FromWords(65, []uint64{0}) })
}

func TestWords_RoundTrip(t *testing.T) {
	v := bitvec.FromBools([]bool{true, false, true})
	w := bitvec.FromWords(v.Len(), v.Words())
	assert.True(t, bitvec.Equal(v, w))
}

func TestClone_Independent(t *testing.T) {
	v := bitvec.New(10)
	c := v.Clone()
	c.Set(3)
	assert.False(t, v.Get(3))
	assert.True(t, c.Get(3))
	assert.False(t, bitvec.Equal(v, c))
}

func TestEqual(t *testing.T) {
	a := bitvec.FromBools([]bool{true, false, true})
	b := bitvec.FromBools([]bool{true, false, true})
	c := bitvec.FromBools([]bool{true, false, false})
	assert.True(t, bitvec.Equal(a, b))
	assert.False(t, bitvec.Equal(a, c))
	assert.False(t, bitvec.Equal(a, bitvec.New(4)))
}

func TestGet_OutOfRange(t *testing.T) {
	v := bitvec.New(8)
	assert.Panics(t, func() { v.Get(8) })
	assert.Panics(t, func() { v.Get(-1) })
	assert.Panics(t, func() { v.Set(8) })
}

func TestNew_InvalidLength(t *testing.T) {
	assert.Panics(t, func() { bitvec.New(0) })
	assert.Panics(t, func() { bitvec.New(-3) })
}

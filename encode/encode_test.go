package encode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardohn/wisard/bitvec"
	"github.com/leonardohn/wisard/encode"
)

// ── Binary ────────────────────────────────────────────────────────────────────

func TestBinary_PassThrough(t *testing.T) {
	e := encode.NewBinary(4)
	bits := []bool{true, false, true, true}
	v, err := e.Encode(bits)
	require.NoError(t, err)
	assert.Equal(t, bits, v.Bools())
}

func TestBinary_LengthMismatch(t *testing.T) {
	e := encode.NewBinary(4)
	_, err := e.Encode([]bool{true, false})
	require.ErrorIs(t, err, encode.ErrLengthMismatch)

	assert.ErrorIs(t, e.Validate(bitvec.New(5)), encode.ErrLengthMismatch)
	assert.NoError(t, e.Validate(bitvec.New(4)))
}

func TestBinary_InvalidSize(t *testing.T) {
	assert.Panics(t, func() { encode.NewBinary(0) })
}

// ── Categorical ───────────────────────────────────────────────────────────────

func TestCategorical_OneHot(t *testing.T) {
	e := encode.NewCategorical(encode.OneHot, []string{"red", "green", "blue"})
	require.Equal(t, 3, e.Size())

	v, err := e.Encode("green")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, v.Bools())
}

func TestCategorical_Ordinal(t *testing.T) {
	e := encode.NewCategorical(encode.Ordinal, []string{"low", "mid", "high"})

	v, err := e.Encode("mid")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, v.Bools())

	v, err = e.Encode("high")
	require.NoError(t, err)
	assert.Equal(t, 3, v.OnesCount())
}

func TestCategorical_UnknownCategory(t *testing.T) {
	e := encode.NewCategorical(encode.OneHot, []string{"red", "green"})
	_, err := e.Encode("magenta")
	assert.ErrorIs(t, err, encode.ErrUnknownCategory)
}

func TestCategorical_InvalidDeclaration(t *testing.T) {
	assert.Panics(t, func() { encode.NewCategorical(encode.OneHot, nil) })
	assert.Panics(t, func() { encode.NewCategorical(encode.OneHot, []string{"a", "a"}) })
}

package encode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardohn/wisard/encode"
)

func TestThermometer_UnaryPrefix(t *testing.T) {
	e := encode.NewThermometer([]float64{1, 2, 3})

	assert.Equal(t, []bool{false, false, false}, e.Encode(0).Bools())
	assert.Equal(t, []bool{true, false, false}, e.Encode(1.5).Bools())
	assert.Equal(t, []bool{true, true, false}, e.Encode(2).Bools())
	assert.Equal(t, []bool{true, true, true}, e.Encode(3).Bools())
}

func TestThermometer_Saturation(t *testing.T) {
	e := encode.NewThermometer([]float64{0, 10})
	assert.Equal(t, 0, e.Encode(-1e9).OnesCount())
	assert.Equal(t, 2, e.Encode(1e9).OnesCount())
}

func TestThermometer_Monotonic(t *testing.T) {
	e := encode.NewThermometer([]float64{-2, 0, 1, 5, 9})
	prev := -1
	for _, x := range []float64{-10, -2, -1, 0, 0.5, 1, 4, 5, 8, 9, 100} {
		count := e.Encode(x).OnesCount()
		assert.GreaterOrEqual(t, count, prev, "x=%v", x)
		prev = count
	}
}

func TestThermometer_EncodeAll(t *testing.T) {
	e := encode.NewThermometer([]float64{1, 2})
	v := e.EncodeAll([]float64{0, 3})
	require.Equal(t, 4, v.Len())
	assert.Equal(t, []bool{false, false, true, true}, v.Bools())
}

func TestThermometer_InvalidBreakpoints(t *testing.T) {
	assert.Panics(t, func() { encode.NewThermometer(nil) })
	assert.Panics(t, func() { encode.NewThermometer([]float64{1, 1}) })
	assert.Panics(t, func() { encode.NewThermometer([]float64{2, 1}) })
}

func TestThermometerFromValues_Quantiles(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1) // 1..100
	}
	e := encode.ThermometerFromValues(values, 4)
	require.Equal(t, 4, e.Size())

	bps := e.Breakpoints()
	for i := 1; i < len(bps); i++ {
		assert.Greater(t, bps[i], bps[i-1])
	}
	// The median should light about half the bits.
	assert.Equal(t, 2, e.Encode(50).OnesCount())
	assert.Equal(t, 0, e.Encode(0).OnesCount())
	assert.Equal(t, 4, e.Encode(100).OnesCount())
}

func TestThermometerFromValues_ConstantValues(t *testing.T) {
	// All-equal training values collapse to a single breakpoint.
	e := encode.ThermometerFromValues([]float64{5, 5, 5, 5}, 8)
	require.Equal(t, 1, e.Size())
	assert.Equal(t, 1, e.Encode(5).OnesCount())
	assert.Equal(t, 0, e.Encode(4).OnesCount())
}

func TestLogThermometer_PowersOfTwo(t *testing.T) {
	e := encode.NewLogThermometer(4)

	assert.Equal(t, 0, e.Encode(-5).OnesCount())
	assert.Equal(t, 0, e.Encode(0).OnesCount())
	assert.Equal(t, 1, e.Encode(1).OnesCount())
	assert.Equal(t, 2, e.Encode(3).OnesCount())
	assert.Equal(t, 3, e.Encode(4).OnesCount())
	assert.Equal(t, 4, e.Encode(8).OnesCount())
	assert.Equal(t, 4, e.Encode(1e12).OnesCount())
}

func TestLogThermometer_InvalidResolution(t *testing.T) {
	assert.Panics(t, func() { encode.NewLogThermometer(0) })
}

package encode

import (
	"sort"

	"github.com/leonardohn/wisard/bitvec"
)

// Thermometer encodes a continuous value as a unary prefix of set bits, one
// bit per breakpoint: bit i is set iff value >= breakpoints[i].
//
// Values are not bounds-checked: anything below the first breakpoint encodes
// as all zeros and anything at or above the last as all ones.
type Thermometer struct {
	breakpoints []float64
}

// NewThermometer returns a Thermometer over the given breakpoints.
// Panics if the slice is empty or not strictly ascending.
func NewThermometer(breakpoints []float64) Thermometer {
	if len(breakpoints) == 0 {
		panic("encode: Thermometer requires at least one breakpoint")
	}
	for i := 1; i < len(breakpoints); i++ {
		if breakpoints[i] <= breakpoints[i-1] {
			panic("encode: Thermometer breakpoints must be strictly ascending")
		}
	}
	bps := make([]float64, len(breakpoints))
	copy(bps, breakpoints)
	return Thermometer{breakpoints: bps}
}

// ThermometerFromValues builds a Thermometer whose breakpoints are the
// resolution-quantiles of the observed training values, so each output bit
// fires for roughly the same fraction of the data.
// Panics if values is empty or resolution is not positive.
func ThermometerFromValues(values []float64, resolution int) Thermometer {
	if len(values) == 0 {
		panic("encode: ThermometerFromValues requires at least one value")
	}
	if resolution <= 0 {
		panic("encode: Thermometer resolution must be positive")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	breakpoints := make([]float64, 0, resolution)
	for i := 1; i <= resolution; i++ {
		q := sorted[(i*(len(sorted)-1))/(resolution+1)]
		// Collapse duplicate quantiles so the breakpoints stay ascending.
		if len(breakpoints) == 0 || q > breakpoints[len(breakpoints)-1] {
			breakpoints = append(breakpoints, q)
		}
	}
	if len(breakpoints) == 0 {
		breakpoints = append(breakpoints, sorted[0])
	}
	return Thermometer{breakpoints: breakpoints}
}

// Size returns the output width in bits.
func (e Thermometer) Size() int { return len(e.breakpoints) }

// Breakpoints returns a copy of the configured breakpoints.
func (e Thermometer) Breakpoints() []float64 {
	out := make([]float64, len(e.breakpoints))
	copy(out, e.breakpoints)
	return out
}

// Encode returns the unary encoding of x.
func (e Thermometer) Encode(x float64) bitvec.Vector {
	v := bitvec.New(len(e.breakpoints))
	for i, bp := range e.breakpoints {
		if x >= bp {
			v.Set(i)
		}
	}
	return v
}

// EncodeAll encodes a feature vector by concatenating the per-feature
// encodings in order. Output length is len(xs) * Size.
func (e Thermometer) EncodeAll(xs []float64) bitvec.Vector {
	size := len(e.breakpoints)
	v := bitvec.New(len(xs) * size)
	for f, x := range xs {
		for i, bp := range e.breakpoints {
			if x >= bp {
				v.Set(f*size + i)
			}
		}
	}
	return v
}

// LogThermometer encodes a non-negative magnitude on a logarithmic unary
// scale: bit i is set iff value >= 2^i. Small values keep one-bit precision
// while large values share the upper bits.
type LogThermometer struct {
	resolution int
}

// NewLogThermometer returns a LogThermometer with the given output width.
// Panics if resolution is not positive.
func NewLogThermometer(resolution int) LogThermometer {
	if resolution <= 0 {
		panic("encode: LogThermometer resolution must be positive")
	}
	return LogThermometer{resolution: resolution}
}

// Size returns the output width in bits.
func (e LogThermometer) Size() int { return e.resolution }

// Encode returns the logarithmic unary encoding of x.
// Negative values encode as all zeros.
func (e LogThermometer) Encode(x float64) bitvec.Vector {
	v := bitvec.New(e.resolution)
	threshold := 1.0
	for i := 0; i < e.resolution; i++ {
		if x >= threshold {
			v.Set(i)
		}
		threshold *= 2
	}
	return v
}

// Package encode converts raw sample values into fixed-length bit-vectors.
//
// Encoders are pure: the output depends only on the input value and the
// encoder configuration. Malformed input surfaces as an error wrapping
// ErrLengthMismatch or ErrUnknownCategory; out-of-range continuous values
// never error, they saturate.
package encode

import (
	"errors"
	"fmt"

	"github.com/leonardohn/wisard/bitvec"
)

var (
	// ErrLengthMismatch is returned when a binary input does not have the
	// configured number of bits.
	ErrLengthMismatch = errors.New("encode: input length mismatch")

	// ErrUnknownCategory is returned when a categorical input is not part of
	// the declared category set.
	ErrUnknownCategory = errors.New("encode: unknown category")
)

// Binary validates pre-encoded bit inputs of a fixed size.
type Binary struct {
	size int
}

// NewBinary returns a Binary encoder for inputs of exactly size bits.
// Panics if size is not positive.
func NewBinary(size int) Binary {
	if size <= 0 {
		panic("encode: Binary size must be positive")
	}
	return Binary{size: size}
}

// Size returns the configured number of bits.
func (e Binary) Size() int { return e.size }

// Encode packs bits into a Vector. The input length must equal Size.
func (e Binary) Encode(bits []bool) (bitvec.Vector, error) {
	if len(bits) != e.size {
		return bitvec.Vector{}, fmt.Errorf("%w: got %d bits, want %d", ErrLengthMismatch, len(bits), e.size)
	}
	return bitvec.FromBools(bits), nil
}

// Validate checks that an already-packed Vector has the configured size.
func (e Binary) Validate(v bitvec.Vector) error {
	if v.Len() != e.size {
		return fmt.Errorf("%w: got %d bits, want %d", ErrLengthMismatch, v.Len(), e.size)
	}
	return nil
}

// CategoricalMode selects the bit layout of a Categorical encoder.
type CategoricalMode int

const (
	// OneHot sets exactly the bit at the category index.
	OneHot CategoricalMode = iota
	// Ordinal sets every bit up to and including the category index, treating
	// the declared category order as an ordinal scale.
	Ordinal
)

// Categorical encodes values from a fixed, pre-declared category set.
type Categorical struct {
	mode  CategoricalMode
	cats  []string
	index map[string]int
}

// NewCategorical returns a Categorical encoder over the given categories.
// The declared order fixes both the bit positions and the ordinal scale.
// Panics if the set is empty or contains duplicates.
func NewCategorical(mode CategoricalMode, categories []string) Categorical {
	if len(categories) == 0 {
		panic("encode: Categorical requires at least one category")
	}
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, ok := index[c]; ok {
			panic("encode: Categorical category declared twice: " + c)
		}
		index[c] = i
	}
	cats := make([]string, len(categories))
	copy(cats, categories)
	return Categorical{mode: mode, cats: cats, index: index}
}

// Size returns the output width, one bit per declared category.
func (e Categorical) Size() int { return len(e.cats) }

// Encode returns the bit pattern for category.
func (e Categorical) Encode(category string) (bitvec.Vector, error) {
	i, ok := e.index[category]
	if !ok {
		return bitvec.Vector{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	v := bitvec.New(len(e.cats))
	if e.mode == OneHot {
		v.Set(i)
		return v, nil
	}
	for j := 0; j <= i; j++ {
		v.Set(j)
	}
	return v, nil
}

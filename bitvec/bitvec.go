// Package bitvec implements a fixed-length bitpacked bit-vector.
// Vectors represent encoded input samples and back the exact RAM tables.
package bitvec

import "math/bits"

// Vector is a fixed-length bitpacked bit-vector backed by []uint64 words.
// Padding bits in the final word are always zero.
//
// The length is immutable, but Set mutates the shared backing words; use
// Clone for an independent copy.
type Vector struct {
	n    int
	data []uint64
}

// New returns a zero-valued Vector of the given length.
func New(n int) Vector {
	if n <= 0 {
		panic("bitvec: length must be positive")
	}
	return Vector{n: n, data: make([]uint64, numWords(n))}
}

// FromBools constructs a Vector from a bool slice, bit i = bits[i].
func FromBools(bits []bool) Vector {
	v := New(len(bits))
	for i, b := range bits {
		if b {
			v.data[i/64] |= 1 << uint(i%64)
		}
	}
	return v
}

// FromWords constructs a Vector from a raw word slice.
// len(data) must equal ceil(n/64). Padding bits are zeroed automatically.
func FromWords(n int, data []uint64) Vector {
	if n <= 0 {
		panic("bitvec: length must be positive")
	}
	needed := numWords(n)
	if len(data) != needed {
		panic("bitvec: data length does not match n")
	}
	copied := make([]uint64, needed)
	copy(copied, data)
	zeroPadding(copied, n)
	return Vector{n: n, data: copied}
}

// Len returns the number of bits in v.
func (v Vector) Len() int { return v.n }

// Get reports whether bit i is set. Panics if i is out of range.
func (v Vector) Get(i int) bool {
	if i < 0 || i >= v.n {
		panic("bitvec: index out of range")
	}
	return v.data[i/64]>>uint(i%64)&1 == 1
}

// Set sets bit i. Panics if i is out of range.
func (v Vector) Set(i int) {
	if i < 0 || i >= v.n {
		panic("bitvec: index out of range")
	}
	v.data[i/64] |= 1 << uint(i%64)
}

// OnesCount returns the number of set bits.
func (v Vector) OnesCount() int {
	var count int
	for _, w := range v.data {
		count += bits.OnesCount64(w)
	}
	return count
}

// Bools returns the bits as a bool slice.
func (v Vector) Bools() []bool {
	out := make([]bool, v.n)
	for i := range out {
		out[i] = v.data[i/64]>>uint(i%64)&1 == 1
	}
	return out
}

// Words returns a copy of the backing words.
func (v Vector) Words() []uint64 {
	out := make([]uint64, len(v.data))
	copy(out, v.data)
	return out
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return Vector{n: v.n, data: v.Words()}
}

// Equal reports whether a and b have the same length and bits.
func Equal(a, b Vector) bool {
	if a.n != b.n {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

func numWords(n int) int {
	return (n + 63) / 64
}

func zeroPadding(data []uint64, n int) {
	if rem := n % 64; rem != 0 {
		data[len(data)-1] &= (uint64(1) << uint(rem)) - 1
	}
}

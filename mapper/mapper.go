// Package mapper maps input bit-vectors to sequences of RAM addresses.
//
// A Mapper owns a fixed permutation of the input bit positions, generated
// once from a seed. The permuted positions are partitioned into contiguous
// tuples of addrSize entries; each tuple reads its bits in order as a
// big-endian integer, the first position being the most significant bit.
// Tuple order is the node order inside every discriminator.
//
// When inputSize is not divisible by addrSize the final tuple is short: it
// keeps only its own positions and the missing high bits read as zero, so the
// final node addresses a smaller space. The rule is fixed at construction, so
// training and prediction always agree.
package mapper

import (
	"fmt"
	"math/rand"

	"github.com/leonardohn/wisard/bitvec"
)

// Mapper is an immutable mapping from bit-vectors to address sequences.
// It is safe for concurrent use.
type Mapper struct {
	inputSize int
	addrSize  int
	order     []int
}

// New returns a Mapper with a pseudo-random permutation derived from seed.
// The same (inputSize, addrSize, seed) triple always yields the same
// permutation, across processes and runs.
// Panics if inputSize or addrSize is not positive.
func New(inputSize, addrSize int, seed int64) *Mapper {
	validateSizes(inputSize, addrSize)
	rng := rand.New(rand.NewSource(seed))
	return &Mapper{
		inputSize: inputSize,
		addrSize:  addrSize,
		order:     rng.Perm(inputSize),
	}
}

// Identity returns a Mapper that reads the input positions in their natural
// order, without permutation. Mainly useful for tests and debugging.
func Identity(inputSize, addrSize int) *Mapper {
	validateSizes(inputSize, addrSize)
	order := make([]int, inputSize)
	for i := range order {
		order[i] = i
	}
	return &Mapper{inputSize: inputSize, addrSize: addrSize, order: order}
}

// FromOrder reconstructs a Mapper from a stored permutation, e.g. when
// loading a saved model. Returns an error if order is not a permutation of
// 0..inputSize.
func FromOrder(inputSize, addrSize int, order []int) (*Mapper, error) {
	validateSizes(inputSize, addrSize)
	if len(order) != inputSize {
		return nil, fmt.Errorf("mapper: order has %d entries, want %d", len(order), inputSize)
	}
	seen := make([]bool, inputSize)
	for _, idx := range order {
		if idx < 0 || idx >= inputSize || seen[idx] {
			return nil, fmt.Errorf("mapper: order is not a permutation of 0..%d", inputSize)
		}
		seen[idx] = true
	}
	copied := make([]int, inputSize)
	copy(copied, order)
	return &Mapper{inputSize: inputSize, addrSize: addrSize, order: copied}, nil
}

// InputSize returns the expected bit-vector length.
func (m *Mapper) InputSize() int { return m.inputSize }

// AddrSize returns the address width in bits.
func (m *Mapper) AddrSize() int { return m.addrSize }

// Tuples returns the number of addresses produced per input,
// ceil(inputSize/addrSize).
func (m *Mapper) Tuples() int {
	return (m.inputSize + m.addrSize - 1) / m.addrSize
}

// Order returns a copy of the position permutation.
func (m *Mapper) Order() []int {
	out := make([]int, len(m.order))
	copy(out, m.order)
	return out
}

// Map returns one address per tuple, in tuple order.
// Panics if v.Len() differs from InputSize: callers validate sample sizes
// before mapping, so a mismatch here is a programming error.
func (m *Mapper) Map(v bitvec.Vector) []uint32 {
	if v.Len() != m.inputSize {
		panic(fmt.Sprintf("mapper: vector has %d bits, mapper expects %d", v.Len(), m.inputSize))
	}
	addrs := make([]uint32, m.Tuples())
	for t := range addrs {
		start := t * m.addrSize
		end := start + m.addrSize
		if end > m.inputSize {
			end = m.inputSize
		}
		var addr uint32
		for _, idx := range m.order[start:end] {
			addr <<= 1
			if v.Get(idx) {
				addr |= 1
			}
		}
		addrs[t] = addr
	}
	return addrs
}

func validateSizes(inputSize, addrSize int) {
	if inputSize <= 0 {
		panic("mapper: inputSize must be positive")
	}
	if addrSize <= 0 || addrSize > 32 {
		panic("mapper: addrSize must be in 1..32")
	}
}

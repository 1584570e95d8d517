package filter

import (
	"fmt"

	"github.com/leonardohn/wisard/bitvec"
)

// Bitset is the exact memory backend: a dense table with one bit per
// possible address. Write is idempotent; Contains has no false positives and
// no false negatives. Memory grows as 2^addrSize bits per node regardless of
// how many addresses were actually seen.
type Bitset struct {
	addrSize int
	bits     bitvec.Vector
}

// NewBitset returns an empty Bitset for addresses of addrSize bits.
// Panics if addrSize is outside 1..32.
func NewBitset(addrSize int) *Bitset {
	if addrSize <= 0 || addrSize > 32 {
		panic("filter: Bitset addrSize must be in 1..32")
	}
	return &Bitset{addrSize: addrSize, bits: bitvec.New(1 << uint(addrSize))}
}

func bitsetFromState(s State) (*Bitset, error) {
	if s.AddrSize <= 0 || s.AddrSize > 32 {
		return nil, fmt.Errorf("%w: bitset addrSize %d", ErrBadState, s.AddrSize)
	}
	space := 1 << uint(s.AddrSize)
	if len(s.Words) != (space+63)/64 {
		return nil, fmt.Errorf("%w: bitset has %d words, want %d", ErrBadState, len(s.Words), (space+63)/64)
	}
	return &Bitset{addrSize: s.AddrSize, bits: bitvec.FromWords(space, s.Words)}, nil
}

// Write marks addr as seen.
func (f *Bitset) Write(addr uint32) { f.bits.Set(int(addr)) }

// Contains reports whether addr was written.
func (f *Bitset) Contains(addr uint32) bool { return f.bits.Get(int(addr)) }

// Len returns the number of distinct addresses written.
func (f *Bitset) Len() int { return f.bits.OnesCount() }

// State returns the serializable contents of f.
func (f *Bitset) State() State {
	return State{Kind: KindBitset, AddrSize: f.addrSize, Words: f.bits.Words()}
}

// BitsetBuilder builds Bitset filters.
type BitsetBuilder struct {
	AddrSize int
}

// Build implements Builder.
func (b BitsetBuilder) Build() Filter { return NewBitset(b.AddrSize) }

// Counting is an exact memory backend with per-address saturating hit
// counters and a bleaching threshold: an address counts as a member only
// after it was written more than Threshold times. With a zero threshold it
// behaves like Bitset at eight times the memory.
type Counting struct {
	addrSize  int
	threshold uint8
	counters  []uint8
}

// NewCounting returns an empty Counting filter for addresses of addrSize
// bits with the given bleaching threshold.
// Panics if addrSize is outside 1..32.
func NewCounting(addrSize int, threshold uint8) *Counting {
	if addrSize <= 0 || addrSize > 32 {
		panic("filter: Counting addrSize must be in 1..32")
	}
	return &Counting{
		addrSize:  addrSize,
		threshold: threshold,
		counters:  make([]uint8, 1<<uint(addrSize)),
	}
}

func countingFromState(s State) (*Counting, error) {
	if s.AddrSize <= 0 || s.AddrSize > 32 {
		return nil, fmt.Errorf("%w: counting addrSize %d", ErrBadState, s.AddrSize)
	}
	if len(s.Counters) != 1<<uint(s.AddrSize) {
		return nil, fmt.Errorf("%w: counting has %d counters, want %d", ErrBadState, len(s.Counters), 1<<uint(s.AddrSize))
	}
	counters := make([]uint8, len(s.Counters))
	copy(counters, s.Counters)
	return &Counting{addrSize: s.AddrSize, threshold: s.Threshold, counters: counters}, nil
}

// Write increments the hit counter for addr, saturating at 255.
func (f *Counting) Write(addr uint32) {
	if f.counters[addr] < 255 {
		f.counters[addr]++
	}
}

// Contains reports whether addr was written more than Threshold times.
func (f *Counting) Contains(addr uint32) bool {
	return f.counters[addr] > f.threshold
}

// Count returns the saturated number of writes for addr.
func (f *Counting) Count(addr uint32) uint32 { return uint32(f.counters[addr]) }

// Threshold returns the bleaching threshold.
func (f *Counting) Threshold() uint8 { return f.threshold }

// State returns the serializable contents of f.
func (f *Counting) State() State {
	counters := make([]uint8, len(f.counters))
	copy(counters, f.counters)
	return State{
		Kind:      KindCounting,
		AddrSize:  f.addrSize,
		Threshold: f.threshold,
		Counters:  counters,
	}
}

// CountingBuilder builds Counting filters.
type CountingBuilder struct {
	AddrSize  int
	Threshold uint8
}

// Build implements Builder.
func (b CountingBuilder) Build() Filter { return NewCounting(b.AddrSize, b.Threshold) }

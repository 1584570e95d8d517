package filter

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Bloom is a counting bloom filter backend. It trades exactness for memory:
// Contains may report false positives at a bounded rate, but never false
// negatives, and the table size is independent of the address width.
//
// Sizing follows the optimal bloom formulas for an expected capacity n and
// target false-positive rate p:
//
//	m = -n * ln(p) / ln(2)^2
//	k = (m / n) * ln(2)
//
// Each of the k probe positions holds a saturating counter; the estimated
// write count of an address is the minimum over its positions, so the
// bleaching threshold applies here the same way it does for Counting.
type Bloom struct {
	capacity  uint32
	fpRate    float64
	threshold uint8
	k         uint32
	counters  []uint8
}

// NewBloom returns an empty Bloom filter sized for capacity distinct
// addresses at the given false-positive rate, with a bleaching threshold.
// Panics if capacity is zero or fpRate is outside (0, 1).
func NewBloom(capacity uint32, fpRate float64, threshold uint8) *Bloom {
	if capacity == 0 {
		panic("filter: Bloom capacity must be positive")
	}
	if fpRate <= 0 || fpRate >= 1 {
		panic("filter: Bloom fpRate must be in (0, 1)")
	}
	ln2 := math.Ln2
	m := uint32(math.Ceil(-float64(capacity) * math.Log(fpRate) / (ln2 * ln2)))
	k := uint32(math.Ceil(float64(m) / float64(capacity) * ln2))
	if m == 0 {
		m = 1
	}
	if k == 0 {
		k = 1
	}
	return &Bloom{
		capacity:  capacity,
		fpRate:    fpRate,
		threshold: threshold,
		k:         k,
		counters:  make([]uint8, m),
	}
}

func bloomFromState(s State) (*Bloom, error) {
	if s.K == 0 || s.M == 0 || len(s.Counters) != int(s.M) {
		return nil, fmt.Errorf("%w: bloom k=%d m=%d counters=%d", ErrBadState, s.K, s.M, len(s.Counters))
	}
	counters := make([]uint8, len(s.Counters))
	copy(counters, s.Counters)
	return &Bloom{
		capacity:  s.Capacity,
		fpRate:    s.FPRate,
		threshold: s.Threshold,
		k:         s.K,
		counters:  counters,
	}, nil
}

// Write increments the counters at all k probe positions for addr,
// saturating at 255.
func (f *Bloom) Write(addr uint32) {
	h1, h2 := f.hashes(addr)
	m := uint32(len(f.counters))
	for i := uint32(0); i < f.k; i++ {
		pos := (h1 + i*h2) % m
		if f.counters[pos] < 255 {
			f.counters[pos]++
		}
	}
}

// Contains reports whether the estimated write count of addr exceeds the
// bleaching threshold. Never false for a written address.
func (f *Bloom) Contains(addr uint32) bool {
	return f.Count(addr) > uint32(f.threshold)
}

// Count returns the estimated number of writes for addr: the minimum counter
// over its probe positions. The estimate never undercounts.
func (f *Bloom) Count(addr uint32) uint32 {
	h1, h2 := f.hashes(addr)
	m := uint32(len(f.counters))
	min := uint8(255)
	for i := uint32(0); i < f.k; i++ {
		pos := (h1 + i*h2) % m
		if f.counters[pos] < min {
			min = f.counters[pos]
		}
	}
	return uint32(min)
}

// State returns the serializable contents of f.
func (f *Bloom) State() State {
	counters := make([]uint8, len(f.counters))
	copy(counters, f.counters)
	return State{
		Kind:      KindBloom,
		Threshold: f.threshold,
		Capacity:  f.capacity,
		FPRate:    f.fpRate,
		K:         f.k,
		M:         uint32(len(f.counters)),
		Counters:  counters,
	}
}

// hashes derives the double-hashing pair for addr. The second hash is forced
// odd so the probe stride never collapses to zero.
func (f *Bloom) hashes(addr uint32) (uint32, uint32) {
	h := fnv.New32a()
	h.Write([]byte{byte(addr), byte(addr >> 8), byte(addr >> 16), byte(addr >> 24)})
	h1 := h.Sum32()
	h2 := (addr*0x9E3779B1 ^ addr>>16) | 1
	return h1, h2
}

// BloomBuilder builds Bloom filters.
type BloomBuilder struct {
	Capacity  uint32
	FPRate    float64
	Threshold uint8
}

// Build implements Builder.
func (b BloomBuilder) Build() Filter { return NewBloom(b.Capacity, b.FPRate, b.Threshold) }

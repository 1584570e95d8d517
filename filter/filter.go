// Package filter implements the memory-node backends of a WiSARD model.
//
// A Filter is the storage unit behind one RAM node: it records which
// addresses were written during training and answers membership queries
// during scoring. Three backends are provided:
//
//   - Bitset: exact membership, one bit per possible address.
//   - Counting: exact membership with saturating hit counters and a
//     bleaching threshold.
//   - Bloom: counting bloom filter with a bounded false-positive rate, for
//     address widths where a dense table is too large.
//
// Filters are not synchronized; the owning discriminator serializes writes.
package filter

import (
	"errors"
	"fmt"
)

// Filter is the capability contract shared by every memory-node backend.
type Filter interface {
	// Write records an address as seen. Writing the same address again never
	// introduces new false positives.
	Write(addr uint32)
	// Contains reports whether an address was (possibly) seen. It never
	// returns false for an address that was written.
	Contains(addr uint32) bool
}

// CountingFilter is implemented by backends that track how many times each
// address was written, which is what bleaching thresholds are tuned against.
type CountingFilter interface {
	Filter
	// Count returns the (estimated) number of writes for addr.
	Count(addr uint32) uint32
}

// Builder constructs identically-configured filters, one per RAM node.
type Builder interface {
	Build() Filter
}

// Stateful is implemented by every backend in this package; it exposes the
// filter contents for serialization.
type Stateful interface {
	State() State
}

// Kind tags the concrete backend of a serialized filter.
type Kind int

const (
	KindBitset Kind = iota
	KindCounting
	KindBloom
)

// State is the serializable contents of a single filter. Only the fields
// relevant to the Kind are populated.
type State struct {
	Kind      Kind
	AddrSize  int
	Threshold uint8
	Capacity  uint32
	FPRate    float64
	K         uint32
	M         uint32
	Words     []uint64
	Counters  []uint8
}

// ErrBadState is returned when a serialized filter state is inconsistent.
var ErrBadState = errors.New("filter: invalid state")

// FromState rebuilds a filter from its serialized contents.
func FromState(s State) (Filter, error) {
	switch s.Kind {
	case KindBitset:
		return bitsetFromState(s)
	case KindCounting:
		return countingFromState(s)
	case KindBloom:
		return bloomFromState(s)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrBadState, s.Kind)
	}
}

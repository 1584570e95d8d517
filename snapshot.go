package wisard

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/leonardohn/wisard/filter"
	"github.com/leonardohn/wisard/mapper"
)

// snapshotVersion is bumped whenever the serialized layout changes.
const snapshotVersion = 1

// modelSnapshot is the gob-encoded persisted form of a Model. It carries the
// full permutation, never just the seed, so reload can never reseed a
// different address map than the one the model was trained with.
type modelSnapshot struct {
	Version   int
	ID        string
	InputSize int
	AddrSize  int
	Seed      int64
	Identity  bool
	Order     []int
	Backend   int
	Bleach    uint8
	BloomCap  uint32
	BloomFP   float64
	Nodes     map[string][]filter.State
	Fits      map[string]uint64
}

// Save writes the complete model state to w. The snapshot is sufficient to
// reproduce identical predictions after Load.
// Concurrent Fit calls are serialized against the per-discriminator state
// capture, so the snapshot never contains a half-written sample.
func (m *Model) Save(w io.Writer) error {
	snap := modelSnapshot{
		Version:   snapshotVersion,
		ID:        m.id.String(),
		InputSize: m.inputSize,
		AddrSize:  m.addrSize,
		Seed:      m.opts.seed,
		Identity:  m.opts.identity,
		Order:     m.mapper.Order(),
		Backend:   int(m.opts.backend),
		Bleach:    m.opts.bleach,
		BloomCap:  m.opts.bloomCap,
		BloomFP:   m.opts.bloomFP,
		Nodes:     make(map[string][]filter.State, m.discs.Len()),
		Fits:      make(map[string]uint64, m.discs.Len()),
	}
	m.discs.Ascend(func(item labelDisc) bool {
		snap.Nodes[item.label] = item.disc.states()
		snap.Fits[item.label] = item.disc.trainedSamples()
		return true
	})
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("wisard: encoding snapshot: %w", err)
	}
	return nil
}

// Load restores a Model previously written by Save.
func Load(r io.Reader) (*Model, error) {
	var snap modelSnapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, snap.Version)
	}
	if snap.InputSize <= 0 || snap.AddrSize <= 0 || snap.AddrSize > 32 {
		return nil, fmt.Errorf("%w: sizes %d/%d", ErrBadSnapshot, snap.InputSize, snap.AddrSize)
	}
	if len(snap.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no discriminators", ErrBadSnapshot)
	}
	id, err := uuid.Parse(snap.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: model id: %v", ErrBadSnapshot, err)
	}

	am, err := mapper.FromOrder(snap.InputSize, snap.AddrSize, snap.Order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	m := &Model{
		id:        id,
		inputSize: snap.InputSize,
		addrSize:  snap.AddrSize,
		opts: modelOptions{
			seed:     snap.Seed,
			backend:  Backend(snap.Backend),
			bleach:   snap.Bleach,
			bloomCap: snap.BloomCap,
			bloomFP:  snap.BloomFP,
			identity: snap.Identity,
		},
		mapper: am,
		discs:  newLabelTree(),
	}
	for label, states := range snap.Nodes {
		if len(states) != am.Tuples() {
			return nil, fmt.Errorf("%w: label %q has %d nodes, want %d", ErrBadSnapshot, label, len(states), am.Tuples())
		}
		nodes := make([]filter.Filter, len(states))
		for i, s := range states {
			f, err := filter.FromState(s)
			if err != nil {
				return nil, fmt.Errorf("%w: label %q node %d: %v", ErrBadSnapshot, label, i, err)
			}
			nodes[i] = f
		}
		m.discs.ReplaceOrInsert(labelDisc{
			label: label,
			disc:  &Discriminator{nodes: nodes, fits: snap.Fits[label]},
		})
	}
	return m, nil
}

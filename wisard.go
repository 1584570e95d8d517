// Package wisard implements a WiSARD weightless neural network: a RAM-based
// classifier that stores observed bit-tuples in addressable memory instead of
// learning continuous weights. Encoded samples are split into bit-tuples by a
// seeded random permutation; each tuple addresses one RAM node per class, and
// prediction picks the class whose nodes recognize the most addresses.
//
// Basic usage:
//
//	m, err := wisard.New(8, 2, []string{"cold", "hot"})
//	if err != nil { ... }
//	m.Fit(bitvec.FromBools([]bool{true, true, true, false, false, false, false, false}), "cold")
//	label, err := m.Predict(bits)
package wisard

import (
	"fmt"
	"sync/atomic"

	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/leonardohn/wisard/bitvec"
	"github.com/leonardohn/wisard/encode"
	"github.com/leonardohn/wisard/filter"
	"github.com/leonardohn/wisard/mapper"
)

// Backend selects the memory-node storage used by every discriminator.
type Backend int

const (
	// Exact stores membership in a dense bitset of 2^addrSize bits per node.
	Exact Backend = iota
	// Counting stores saturating hit counters, enabling bleaching thresholds.
	Counting
	// Bloom stores membership in a counting bloom filter with a bounded
	// false-positive rate; memory is independent of the address width.
	Bloom
)

// Option configures a Model.
type Option func(*modelOptions)

type modelOptions struct {
	seed     int64
	backend  Backend
	bleach   uint8
	bloomCap uint32
	bloomFP  float64
	identity bool
}

func defaultOptions() modelOptions {
	return modelOptions{
		backend:  Exact,
		bloomCap: 1024,
		bloomFP:  0.01,
	}
}

// WithSeed sets the permutation seed (default 0).
// Models with the same sizes and seed map identical inputs to identical
// addresses, across processes and runs.
func WithSeed(seed int64) Option { return func(o *modelOptions) { o.seed = seed } }

// WithBackend selects the memory-node backend (default Exact).
func WithBackend(b Backend) Option { return func(o *modelOptions) { o.backend = b } }

// WithBleach sets the bleaching threshold (default 0): a node recognizes an
// address only after it was written more than threshold times. Only the
// Counting and Bloom backends count writes; Exact ignores the threshold.
func WithBleach(threshold uint8) Option { return func(o *modelOptions) { o.bleach = threshold } }

// WithBloomSizing sets the expected number of distinct addresses per node and
// the target false-positive rate for the Bloom backend
// (defaults 1024 and 0.01).
func WithBloomSizing(capacity uint32, fpRate float64) Option {
	return func(o *modelOptions) {
		o.bloomCap = capacity
		o.bloomFP = fpRate
	}
}

// WithIdentityOrder disables the random permutation: tuples read consecutive
// input positions in natural order. Mainly useful for tests, where it makes
// addresses predictable by hand.
func WithIdentityOrder() Option { return func(o *modelOptions) { o.identity = true } }

// Score is one label's raw discriminator response for a sample.
type Score struct {
	Label string
	Score int
}

// Stats is a point-in-time snapshot of model metrics.
type Stats struct {
	Labels   int
	Nodes    int
	Fits     uint64
	Predicts uint64
	PerLabel map[string]uint64 // samples trained per label
}

type labelDisc struct {
	label string
	disc  *Discriminator
}

// Model is a WiSARD classifier over a fixed, closed label set.
// It is safe for concurrent use: Fit serializes writes per target
// discriminator, Predict and PredictScores only read.
type Model struct {
	id        uuid.UUID
	inputSize int
	addrSize  int
	opts      modelOptions
	mapper    *mapper.Mapper
	discs     *btree.BTreeG[labelDisc]

	fits     atomic.Uint64
	predicts atomic.Uint64
}

// New creates a Model classifying inputSize-bit samples into the given
// labels, using addrSize-bit RAM addresses. The label set is fixed for the
// lifetime of the model; label order does not matter, ties in Predict always
// resolve to the lowest label.
func New(inputSize, addrSize int, labels []string, opts ...Option) (*Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if inputSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInputSize, inputSize)
	}
	if addrSize <= 0 || addrSize > 32 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAddrSize, addrSize)
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if o.backend == Bloom && (o.bloomCap == 0 || o.bloomFP <= 0 || o.bloomFP >= 1) {
		return nil, fmt.Errorf("%w: bloom capacity %d, fp rate %v", ErrInvalidOption, o.bloomCap, o.bloomFP)
	}

	var am *mapper.Mapper
	if o.identity {
		am = mapper.Identity(inputSize, addrSize)
	} else {
		am = mapper.New(inputSize, addrSize, o.seed)
	}

	m := &Model{
		id:        uuid.New(),
		inputSize: inputSize,
		addrSize:  addrSize,
		opts:      o,
		mapper:    am,
		discs:     newLabelTree(),
	}
	builder := o.filterBuilder(addrSize)
	for _, label := range labels {
		if _, ok := m.discs.Get(labelDisc{label: label}); ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		m.discs.ReplaceOrInsert(labelDisc{label: label, disc: newDiscriminator(am.Tuples(), builder)})
	}
	return m, nil
}

func newLabelTree() *btree.BTreeG[labelDisc] {
	return btree.NewG(2, func(a, b labelDisc) bool { return a.label < b.label })
}

func (o modelOptions) filterBuilder(addrSize int) filter.Builder {
	switch o.backend {
	case Counting:
		return filter.CountingBuilder{AddrSize: addrSize, Threshold: o.bleach}
	case Bloom:
		return filter.BloomBuilder{Capacity: o.bloomCap, FPRate: o.bloomFP, Threshold: o.bleach}
	default:
		return filter.BitsetBuilder{AddrSize: addrSize}
	}
}

// Fit trains the discriminator for label on one encoded sample.
// Returns an error wrapping encode.ErrLengthMismatch for a wrong-size sample
// or ErrUnknownLabel for a label outside the declared set; in both cases no
// discriminator is mutated.
func (m *Model) Fit(v bitvec.Vector, label string) error {
	if v.Len() != m.inputSize {
		return fmt.Errorf("%w: got %d bits, want %d", encode.ErrLengthMismatch, v.Len(), m.inputSize)
	}
	item, ok := m.discs.Get(labelDisc{label: label})
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	item.disc.Train(m.mapper.Map(v))
	m.fits.Add(1)
	return nil
}

// Predict returns the label whose discriminator scores highest for the
// sample. Ties resolve to the lowest label in ascending order; on a fully
// untrained model every score is zero (Exact backend), so Predict returns
// the lowest label.
func (m *Model) Predict(v bitvec.Vector) (string, error) {
	if v.Len() != m.inputSize {
		return "", fmt.Errorf("%w: got %d bits, want %d", encode.ErrLengthMismatch, v.Len(), m.inputSize)
	}
	addrs := m.mapper.Map(v)
	var best string
	bestScore := -1
	m.discs.Ascend(func(item labelDisc) bool {
		if s := item.disc.Score(addrs); s > bestScore {
			best = item.label
			bestScore = s
		}
		return true
	})
	m.predicts.Add(1)
	return best, nil
}

// PredictScores returns the raw per-label scores for the sample, in
// ascending label order, without normalization.
func (m *Model) PredictScores(v bitvec.Vector) ([]Score, error) {
	if v.Len() != m.inputSize {
		return nil, fmt.Errorf("%w: got %d bits, want %d", encode.ErrLengthMismatch, v.Len(), m.inputSize)
	}
	addrs := m.mapper.Map(v)
	scores := make([]Score, 0, m.discs.Len())
	m.discs.Ascend(func(item labelDisc) bool {
		scores = append(scores, Score{Label: item.label, Score: item.disc.Score(addrs)})
		return true
	})
	m.predicts.Add(1)
	return scores, nil
}

// Discriminator returns the discriminator owned by label, for direct
// inspection. The bool is false for an unknown label.
func (m *Model) Discriminator(label string) (*Discriminator, bool) {
	item, ok := m.discs.Get(labelDisc{label: label})
	if !ok {
		return nil, false
	}
	return item.disc, true
}

// Labels returns the declared label set in ascending order.
func (m *Model) Labels() []string {
	labels := make([]string, 0, m.discs.Len())
	m.discs.Ascend(func(item labelDisc) bool {
		labels = append(labels, item.label)
		return true
	})
	return labels
}

// InputSize returns the expected sample length in bits.
func (m *Model) InputSize() int { return m.inputSize }

// AddrSize returns the RAM address width in bits.
func (m *Model) AddrSize() int { return m.addrSize }

// Nodes returns the number of memory nodes per discriminator,
// ceil(InputSize/AddrSize).
func (m *Model) Nodes() int { return m.mapper.Tuples() }

// Seed returns the permutation seed.
func (m *Model) Seed() int64 { return m.opts.seed }

// ID returns the model's unique identifier, preserved across Save/Load.
func (m *Model) ID() string { return m.id.String() }

// Stats returns a point-in-time snapshot of model metrics.
func (m *Model) Stats() Stats {
	perLabel := make(map[string]uint64, m.discs.Len())
	m.discs.Ascend(func(item labelDisc) bool {
		perLabel[item.label] = item.disc.trainedSamples()
		return true
	})
	return Stats{
		Labels:   m.discs.Len(),
		Nodes:    m.mapper.Tuples(),
		Fits:     m.fits.Load(),
		Predicts: m.predicts.Load(),
		PerLabel: perLabel,
	}
}

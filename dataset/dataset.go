// Package dataset provides a labeled sample container with CSV loading,
// splitting, and parallel batch training and evaluation helpers.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/leonardohn/wisard/bitvec"
)

// Sample is one encoded input with its label.
type Sample struct {
	Bits  bitvec.Vector
	Label string
}

// Dataset is an ordered collection of labeled samples.
type Dataset struct {
	samples []Sample
}

// New returns an empty Dataset.
func New() *Dataset { return &Dataset{} }

// FromSamples wraps the given samples without copying.
func FromSamples(samples []Sample) *Dataset { return &Dataset{samples: samples} }

// Add appends a sample.
func (d *Dataset) Add(s Sample) { d.samples = append(d.samples, s) }

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.samples) }

// At returns the sample at index i.
func (d *Dataset) At(i int) Sample { return d.samples[i] }

// Labels returns the distinct labels in ascending order.
func (d *Dataset) Labels() []string {
	seen := make(map[string]struct{})
	for _, s := range d.samples {
		seen[s.Label] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Split shuffles the dataset with the given seed and returns the first
// frac of samples as the training set and the rest as the test set.
// Panics if frac is outside [0, 1].
func (d *Dataset) Split(frac float64, seed int64) (train, test *Dataset) {
	if frac < 0 || frac > 1 {
		panic("dataset: split fraction must be in [0, 1]")
	}
	shuffled := make([]Sample, len(d.samples))
	copy(shuffled, d.samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	cut := int(float64(len(shuffled)) * frac)
	return FromSamples(shuffled[:cut]), FromSamples(shuffled[cut:])
}

// FromCSV reads samples from r: each record holds inputSize cells of "0" or
// "1" followed by one label cell.
func FromCSV(r io.Reader, inputSize int) (*Dataset, error) {
	if inputSize <= 0 {
		panic("dataset: inputSize must be positive")
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = inputSize + 1

	d := New()
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading csv: %w", err)
		}
		bits := make([]bool, inputSize)
		for i, cell := range record[:inputSize] {
			switch cell {
			case "0":
			case "1":
				bits[i] = true
			default:
				return nil, fmt.Errorf("dataset: line %d, column %d: %q is not a bit", line, i+1, cell)
			}
		}
		d.Add(Sample{Bits: bitvec.FromBools(bits), Label: record[inputSize]})
	}
}

// Fitter trains on one encoded sample. *wisard.Model implements it.
type Fitter interface {
	Fit(v bitvec.Vector, label string) error
}

// Predictor classifies one encoded sample. *wisard.Model implements it.
type Predictor interface {
	Predict(v bitvec.Vector) (string, error)
}

// Train fits every sample of ds into f, one worker per label so each
// discriminator has a single writer. The first error stops all workers.
func Train(f Fitter, ds *Dataset) error {
	byLabel := make(map[string][]Sample)
	for _, s := range ds.samples {
		byLabel[s.Label] = append(byLabel[s.Label], s)
	}

	var g errgroup.Group
	for _, samples := range byLabel {
		samples := samples
		g.Go(func() error {
			for _, s := range samples {
				if err := f.Fit(s.Bits, s.Label); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Evaluate predicts every sample of ds in parallel and returns the fraction
// classified correctly.
func Evaluate(p Predictor, ds *Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, nil
	}

	var correct atomic.Uint64
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, s := range ds.samples {
		s := s
		g.Go(func() error {
			label, err := p.Predict(s.Bits)
			if err != nil {
				return err
			}
			if label == s.Label {
				correct.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return float64(correct.Load()) / float64(ds.Len()), nil
}

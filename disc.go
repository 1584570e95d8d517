package wisard

import (
	"fmt"
	"sync"

	"github.com/leonardohn/wisard/filter"
)

// Discriminator is the learned memory of a single class label: one filter
// per tuple position, indexed in the same order the address mapper emits
// addresses.
//
// Writes take the exclusive lock; scoring takes the shared lock, so any
// number of scorers may run concurrently with each other.
type Discriminator struct {
	mu    sync.RWMutex
	nodes []filter.Filter
	fits  uint64
}

func newDiscriminator(tuples int, b filter.Builder) *Discriminator {
	nodes := make([]filter.Filter, tuples)
	for i := range nodes {
		nodes[i] = b.Build()
	}
	return &Discriminator{nodes: nodes}
}

// Nodes returns the number of memory nodes.
func (d *Discriminator) Nodes() int { return len(d.nodes) }

// Train writes each address into its node. Panics if the address count does
// not match the node count: addresses come from the owning model's mapper,
// so a mismatch is a programming error, not bad input data.
func (d *Discriminator) Train(addrs []uint32) {
	d.checkLen(addrs)
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, addr := range addrs {
		d.nodes[i].Write(addr)
	}
	d.fits++
}

// Score returns the number of nodes that recognize their address,
// in [0, Nodes]. Panics on an address count mismatch, as Train does.
func (d *Discriminator) Score(addrs []uint32) int {
	d.checkLen(addrs)
	d.mu.RLock()
	defer d.mu.RUnlock()
	var score int
	for i, addr := range addrs {
		if d.nodes[i].Contains(addr) {
			score++
		}
	}
	return score
}

// Counts returns the per-node write counters for the given addresses, or
// (nil, false) when the backend does not count. Useful for tuning bleaching
// thresholds.
func (d *Discriminator) Counts(addrs []uint32) ([]uint32, bool) {
	d.checkLen(addrs)
	d.mu.RLock()
	defer d.mu.RUnlock()
	counts := make([]uint32, len(addrs))
	for i, addr := range addrs {
		cf, ok := d.nodes[i].(filter.CountingFilter)
		if !ok {
			return nil, false
		}
		counts[i] = cf.Count(addr)
	}
	return counts, true
}

func (d *Discriminator) checkLen(addrs []uint32) {
	if len(addrs) != len(d.nodes) {
		panic(fmt.Sprintf("wisard: got %d addresses for %d nodes", len(addrs), len(d.nodes)))
	}
}

// trainedSamples returns how many samples were trained into d.
func (d *Discriminator) trainedSamples() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fits
}

// states snapshots the contents of every node.
func (d *Discriminator) states() []filter.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	states := make([]filter.State, len(d.nodes))
	for i, n := range d.nodes {
		states[i] = n.(filter.Stateful).State()
	}
	return states
}

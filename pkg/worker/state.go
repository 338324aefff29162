package worker

import (
	"sync/atomic"
	"time"

	"github.com/screa/npub-miner/pkg/types"
)

// Ratchet is the shared best-difficulty register. Its value only moves up.
type Ratchet struct {
	value    atomic.Int64
	tracking bool
}

// NewRatchet creates a register starting at threshold. A zero threshold
// disables tracking: offers above zero are accepted but never stored.
func NewRatchet(threshold uint8) *Ratchet {
	r := &Ratchet{tracking: threshold > 0}
	r.value.Store(int64(threshold))
	return r
}

// Load returns the current register value
func (r *Ratchet) Load() int {
	return int(r.value.Load())
}

// Tracking reports whether accepted offers raise the register
func (r *Ratchet) Tracking() bool {
	return r.tracking
}

// Offer accepts bits iff it strictly exceeds the register, raising the
// register when tracking. The raise only commits while bits still exceeds the
// visible value, so concurrent offers never lower it.
func (r *Ratchet) Offer(bits int) bool {
	for {
		cur := r.value.Load()
		if int64(bits) <= cur {
			return false
		}
		if !r.tracking {
			return true
		}
		if r.value.CompareAndSwap(cur, int64(bits)) {
			return true
		}
	}
}

// SharedState is created once per run and shared by every worker
type SharedState struct {
	Best *Ratchet

	iterations int64
	started    time.Time
}

// NewSharedState creates the run state with the ratchet at threshold
func NewSharedState(threshold uint8) *SharedState {
	return &SharedState{
		Best:    NewRatchet(threshold),
		started: time.Now(),
	}
}

// AddIteration records one completed loop iteration
func (s *SharedState) AddIteration() int64 {
	return atomic.AddInt64(&s.iterations, 1)
}

// Iterations returns the total completed iterations across all workers
func (s *SharedState) Iterations() int64 {
	return atomic.LoadInt64(&s.iterations)
}

// Stats computes throughput since the state was created
func (s *SharedState) Stats() types.Stats {
	iterations := s.Iterations()
	elapsed := int64(time.Since(s.started) / time.Second)
	return types.Stats{
		Iterations:     iterations,
		ElapsedSeconds: elapsed,
		Rate:           iterations / max(1, elapsed),
	}
}

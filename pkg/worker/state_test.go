package worker

import (
	"sync"
	"testing"
)

func TestRatchetOffer(t *testing.T) {
	r := NewRatchet(5)

	steps := []struct {
		bits   int
		accept bool
		after  int
	}{
		{bits: 3, accept: false, after: 5},
		{bits: 5, accept: false, after: 5},
		{bits: 6, accept: true, after: 6},
		{bits: 6, accept: false, after: 6},
		{bits: 12, accept: true, after: 12},
		{bits: 9, accept: false, after: 12},
	}

	for i, s := range steps {
		if got := r.Offer(s.bits); got != s.accept {
			t.Errorf("step %d: Offer(%d) = %v, want %v", i, s.bits, got, s.accept)
		}
		if r.Load() != s.after {
			t.Errorf("step %d: Load() = %d, want %d", i, r.Load(), s.after)
		}
	}
}

func TestRatchetUntracked(t *testing.T) {
	r := NewRatchet(0)
	if r.Tracking() {
		t.Fatal("zero threshold should disable tracking")
	}
	if r.Offer(0) {
		t.Error("0 bits must not exceed 0")
	}
	for _, bits := range []int{1, 7, 3} {
		if !r.Offer(bits) {
			t.Errorf("Offer(%d) rejected", bits)
		}
	}
	if r.Load() != 0 {
		t.Errorf("Load() = %d, want 0", r.Load())
	}
}

func TestRatchetConcurrentOffers(t *testing.T) {
	r := NewRatchet(1)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for bits := 0; bits <= 200; bits++ {
				if r.Offer((bits*7 + g*13) % 201) {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}
		}(g)
	}
	wg.Wait()

	if r.Load() != 200 {
		t.Errorf("Load() = %d, want max offered 200", r.Load())
	}
	// every accepted offer raised the register by at least one
	if accepted > 200 {
		t.Errorf("accepted %d offers, more than the register could rise", accepted)
	}
}

func TestSharedStateStats(t *testing.T) {
	s := NewSharedState(10)
	for i := 0; i < 42; i++ {
		s.AddIteration()
	}
	st := s.Stats()
	if st.Iterations != 42 {
		t.Errorf("Iterations = %d, want 42", st.Iterations)
	}
	if st.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %d, want 0", st.ElapsedSeconds)
	}
	if st.Rate != 42 {
		t.Errorf("Rate = %d, want 42 (elapsed floored at 1s)", st.Rate)
	}
	if s.Best.Load() != 10 {
		t.Errorf("Best = %d, want 10", s.Best.Load())
	}
}

package analyzer

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Jitter supplies the uniform [0,1) term added to every relevance score
type Jitter interface {
	Float64() float64
}

type randomJitter struct{}

func (randomJitter) Float64() float64 {
	return rand.Float64()
}

// RandomJitter returns a process-wide random source safe for concurrent use
func RandomJitter() Jitter {
	return randomJitter{}
}

type seededJitter struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededJitter returns a reproducible source. Sequences are only
// reproducible when calls are not interleaved across goroutines.
func NewSeededJitter(seed uint64) Jitter {
	return &seededJitter{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededJitter) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// FixedJitter always returns the same value, clamped into [0,1)
type FixedJitter float64

func (f FixedJitter) Float64() float64 {
	v := float64(f)
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return math.Nextafter(1, 0)
	default:
		return v
	}
}

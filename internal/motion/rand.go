package motion

import (
	"math/rand/v2"
	"time"
)

// Rand is the randomness source used by every stochastic component
// (pose noise, duration sampling, auto-drive targets, wander diffusion).
// Injecting it keeps simulations reproducible under a fixed seed.
type Rand interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal sample.
	NormFloat64() float64
	// IntN returns a uniform sample in [0, n).
	IntN(n int) int
}

type pcgRand struct {
	r *rand.Rand
}

func (p *pcgRand) Float64() float64     { return p.r.Float64() }
func (p *pcgRand) NormFloat64() float64 { return p.r.NormFloat64() }
func (p *pcgRand) IntN(n int) int       { return p.r.IntN(n) }

// NewSeeded returns a deterministic [Rand] backed by a PCG source.
func NewSeeded(seed uint64) Rand {
	return &pcgRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRand returns a [Rand] seeded from the wall clock.
func NewRand() Rand {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// Uniform returns a uniform sample in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Spread returns a uniform sample in [-1, 1).
func Spread(r Rand) float64 {
	return 2*r.Float64() - 1
}

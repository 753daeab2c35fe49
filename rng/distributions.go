package rng

import (
	"math"
	"math/rand"

	"triagesim/simerr"
)

// BernoulliStream samples 0/1 with probability p of drawing 1.
type BernoulliStream struct {
	p   float64
	rng *rand.Rand
}

func NewBernoulli(p float64, seed int64) *BernoulliStream {
	return &BernoulliStream{p: p, rng: rand.New(rand.NewSource(seed))}
}

func (s *BernoulliStream) Sample() int {
	if s.rng.Float64() < s.p {
		return 1
	}
	return 0
}

// DiscreteStream samples one of a set of elements according to a matched
// probability vector.
type DiscreteStream struct {
	elements []int
	cum      []float64
	rng      *rand.Rand
}

// NewDiscrete builds a categorical stream over elements weighted by probs.
// probs is normalised defensively: callers are not required to guarantee
// it sums to exactly 1.0.
func NewDiscrete(elements []int, probs []float64, seed int64) *DiscreteStream {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	cum := make([]float64, len(probs))
	running := 0.0
	for i, p := range probs {
		if total > 0 {
			running += p / total
		}
		cum[i] = running
	}
	return &DiscreteStream{elements: elements, cum: cum, rng: rand.New(rand.NewSource(seed))}
}

func (s *DiscreteStream) Sample() int {
	r := s.rng.Float64()
	for i, c := range s.cum {
		if r <= c {
			return s.elements[i]
		}
	}
	return s.elements[len(s.elements)-1]
}

// PoissonStream samples non-negative integers from a Poisson distribution
// with the given mean, using Knuth's multiplicative algorithm.
type PoissonStream struct {
	mean float64
	rng  *rand.Rand
}

func NewPoisson(mean float64, seed int64) *PoissonStream {
	return &PoissonStream{mean: mean, rng: rand.New(rand.NewSource(seed))}
}

func (s *PoissonStream) Sample() int {
	l := math.Exp(-s.mean)
	k := 0
	p := 1.0
	for {
		k++
		p *= s.rng.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// LognormalStream samples positive reals from a lognormal distribution
// parameterised by the mean and stdev of the distribution itself (not of
// the underlying normal). The conversion to the underlying normal's mu/sigma
// follows the standard moment-matching identities.
type LognormalStream struct {
	mu, sigma float64
	rng       *rand.Rand
}

// NewLognormal constructs a stream from the distribution's mean and stdev.
// Both must be strictly positive; otherwise NewLognormal returns a
// DistributionDomainError (checked at construction, not sampling).
func NewLognormal(mean, stdev float64, seed int64) (*LognormalStream, error) {
	if mean <= 0 || stdev <= 0 {
		return nil, simerr.NewDistributionDomainError("lognormal",
			"mean and stdev must both be strictly positive")
	}
	variance := stdev * stdev
	mu := math.Log(mean * mean / math.Sqrt(variance+mean*mean))
	sigmaSq := math.Log(1 + variance/(mean*mean))
	return &LognormalStream{
		mu:    mu,
		sigma: math.Sqrt(sigmaSq),
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *LognormalStream) Sample() float64 {
	z := s.rng.NormFloat64()
	return math.Exp(s.mu + s.sigma*z)
}

// TieBreaker is the process-wide uniform integer stream used to break ties
// among equally good clinicians. It must never share state with any
// distribution stream above.
type TieBreaker struct {
	rng *rand.Rand
}

func NewTieBreaker(seed int64) *TieBreaker {
	return &TieBreaker{rng: rand.New(rand.NewSource(seed))}
}

// Choose picks a uniformly random index in [0, n).
func (t *TieBreaker) Choose(n int) int {
	return t.rng.Intn(n)
}

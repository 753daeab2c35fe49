// Package rng provides the seedable random streams and distribution
// samplers the simulation core needs: Bernoulli, Discrete-categorical,
// Poisson, and Lognormal, plus the deterministic seed-vector generator and
// the dedicated tie-breaking stream. Every stream wraps its own
// *rand.Rand instance (grounded on the Monte-Carlo engine pattern in the
// retrieval pack's bbak-mcs-mcp simulation package) so that no two
// streams ever share state — a requirement for reproducible runs.
package rng

import "math/rand"

// SeedVectorFloor and SeedVectorCeil bound the seeds generate_seed_vector
// draws, per spec.
const (
	SeedVectorFloor = 1000
	SeedVectorCeil  = 10_000_000_000
)

// GenerateSeedVector returns size integers drawn from a master stream in
// [1000, 10^10). Deterministic under masterSeed.
func GenerateSeedVector(masterSeed int64, size int) []int64 {
	master := rand.New(rand.NewSource(masterSeed))
	out := make([]int64, size)
	span := int64(SeedVectorCeil - SeedVectorFloor)
	for i := 0; i < size; i++ {
		out[i] = SeedVectorFloor + master.Int63n(span)
	}
	return out
}

package sim

import (
	"hash/fnv"
	"math/rand"
)

const DefaultSeed = "minerworld"

func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

// RandomBetween returns a value in [lo, hi], both ends inclusive.
func RandomBetween(rng *rand.Rand, lo, hi int64) int64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

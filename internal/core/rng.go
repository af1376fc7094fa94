package core

import "math/rand/v2"

// Seeded returns a PCG generator for seed. Equal seeds give equal streams.
func Seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// PickBelow draws a value in [0, n) from seed. It returns 0 when n is 0.
func PickBelow(seed int64, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return Seeded(seed).Uint64N(n)
}

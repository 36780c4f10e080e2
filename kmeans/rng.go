// SPDX-License-Identifier: MIT

package kmeans

import "math/rand"

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

const golden = 0x9e3779b97f4a7c15

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// restartRNGs hands out one generator per restart. A single restart keeps
// base; otherwise restart r is seeded by mixing a fresh base.Int63() with r,
// so streams stay decorrelated even for neighboring seeds. All draws from
// base happen here, before any restart runs.
func restartRNGs(base *rand.Rand, restarts int) []*rand.Rand {
	out := make([]*rand.Rand, restarts)
	if restarts == 1 {
		out[0] = base
		return out
	}
	for r := range out {
		x := uint64(base.Int63()) ^ (uint64(r) + golden)
		out[r] = rand.New(rand.NewSource(int64(mix64(x + golden))))
	}

	return out
}

// mix64 is the SplitMix64 output finalizer.
func mix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}

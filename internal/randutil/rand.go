// Package randutil builds reproducible math/rand/v2 generators.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG generator seeded from seed. Equal seeds give equal
// sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Stream returns the n-th independent generator derived from seed, used to
// give each table of a run its own reproducible sequence.
func Stream(seed int64, n int) *rand.Rand {
	return New(int64(splitmix(uint64(seed) ^ splitmix(uint64(n)+goldenRatio64))))
}

// FromClock returns a generator seeded from the wall clock along with the
// seed used, so a run can be replayed.
func FromClock() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

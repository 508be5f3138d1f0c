package testutil

import "math/rand"

// Ramp generates the repeating ramp (i % 100) - 50 used as dummy audio by
// the cycle-cost simulation.
func Ramp(length int) []int16 {
	out := make([]int16, length)
	for i := range out {
		out[i] = int16(i%100 - 50)
	}
	return out
}

// DeterministicNoise16 generates int16 white noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise16(seed int64, amplitude int16, length int) []int16 {
	out := make([]int16, length)
	rng := rand.New(rand.NewSource(seed))
	span := 2*int(amplitude) + 1
	for i := range out {
		out[i] = int16(rng.Intn(span) - int(amplitude))
	}
	return out
}

// DC16 generates a constant-valued int16 signal.
func DC16(value int16, length int) []int16 {
	out := make([]int16, length)
	for i := range out {
		out[i] = value
	}
	return out
}

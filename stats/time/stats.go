// Package time computes time-domain statistics of fixed-point sample streams.
package time

import (
	"encoding/binary"
	"hash"
	"math"

	"github.com/cespare/xxhash"
)

// fullScale is the magnitude of the most negative int16 sample.
const fullScale = 1 << 15

// Stats holds time-domain statistics of an int16 signal.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dBFS       float64
	Max            int16
	MaxPos         int
	Min            int16
	MinPos         int
	Peak           int // max(|max|, |min|)
	Peak_dBFS      float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
	// Digest is the xxhash-64 of the samples in little-endian byte order.
	// Identical streams have identical digests.
	Digest uint64
}

// dBFS converts a sample magnitude to decibels relative to int16 full scale.
// Returns -Inf for zero values.
func dBFS(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a/fullScale)
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []int16) Stats {
	s := NewStreamingStats()
	s.Update(signal)
	return s.Result()
}

// Digest returns the xxhash-64 of signal in little-endian byte order.
func Digest(signal []int16) uint64 {
	return xxhash.Sum64(appendSamples(nil, signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []int16) int {
	peak := 0
	for _, x := range signal {
		peak = max(peak, abs16(x))
	}

	return peak
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples. Zero samples do not count as a sign.
func ZeroCrossings(signal []int16) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if crosses(signal[i-1], signal[i]) {
			count++
		}
	}

	return count
}

// StreamingStats accumulates statistics incrementally across blocks of
// samples. Its result is identical to [Calculate] over the concatenation of
// all blocks.
type StreamingStats struct {
	n             int
	sum           int64
	sumSq         float64
	maxVal        int16
	maxPos        int
	minVal        int16
	minPos        int
	zeroCrossings int
	lastSample    int16
	digest        hash.Hash64
	scratch       []byte
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []int16) {
	if len(samples) == 0 {
		return
	}

	for _, x := range samples {
		if s.n == 0 {
			s.maxVal, s.minVal = x, x
		} else {
			if x > s.maxVal {
				s.maxVal = x
				s.maxPos = s.n
			}

			if x < s.minVal {
				s.minVal = x
				s.minPos = s.n
			}

			if crosses(s.lastSample, x) {
				s.zeroCrossings++
			}
		}

		s.sum += int64(x)
		s.sumSq += float64(x) * float64(x)
		s.lastSample = x
		s.n++
	}

	s.scratch = appendSamples(s.scratch[:0], samples)
	_, _ = s.hash().Write(s.scratch)
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{
			RMS_dBFS:       math.Inf(-1),
			Peak_dBFS:      math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
			Digest:         s.hash().Sum64(),
		}
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := max(abs16(s.maxVal), abs16(s.minVal))

	var crest, crestdB float64
	if rms > 0 {
		crest = float64(peak) / rms
		crestdB = 20 * math.Log10(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             float64(s.sum) / nf,
		RMS:            rms,
		RMS_dBFS:       dBFS(rms),
		Max:            s.maxVal,
		MaxPos:         s.maxPos,
		Min:            s.minVal,
		MinPos:         s.minPos,
		Peak:           peak,
		Peak_dBFS:      dBFS(float64(peak)),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         s.sumSq,
		ZeroCrossings:  s.zeroCrossings,
		Digest:         s.hash().Sum64(),
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}

func (s *StreamingStats) hash() hash.Hash64 {
	if s.digest == nil {
		s.digest = xxhash.New()
	}
	return s.digest
}

func appendSamples(dst []byte, samples []int16) []byte {
	for _, x := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(x))
	}
	return dst
}

func crosses(a, b int16) bool {
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}

func abs16(x int16) int {
	if x < 0 {
		return -int(x)
	}
	return int(x)
}

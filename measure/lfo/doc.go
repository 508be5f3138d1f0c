// Package lfo measures the modulation produced by a gain generator.
//
// [Analyze] takes a gain trace (one gain value per sample, as returned by
// modulation.Tremolo.NextGain) and reports the observed LFO rate, period and
// depth. The rate comes from the peak of a Hann-windowed FFT of the trace
// with parabolic refinement around the peak bin.
package lfo

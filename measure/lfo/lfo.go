package lfo

import (
	"fmt"
	"math"

	"github.com/cboule/tremolo-dsp/dsp/core"
	"github.com/cboule/tremolo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/meko-christian/algo-approx"
)

// MinTraceLength is the shortest trace Analyze accepts.
const MinTraceLength = 8

// Result holds LFO measurement results.
type Result struct {
	SampleRate    float64
	Length        int
	FFTSize       int
	RateHz        float64 // 0 when the trace is flat
	PeriodSamples float64 // 0 when the trace is flat
	MinGain       int
	MaxGain       int
	MeanGain      float64
	Depth         float64 // (max-min)/max
	DepthDB       float64 // 20*log10(max/min), +Inf when min is 0
}

// Analyze measures rate and depth of a gain trace sampled at sampleRate.
func Analyze(gains []int, sampleRate float64) (Result, error) {
	if len(gains) < MinTraceLength {
		return Result{}, fmt.Errorf("lfo trace must hold at least %d samples: %d", MinTraceLength, len(gains))
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	res := Result{
		SampleRate: sampleRate,
		Length:     len(gains),
		MinGain:    gains[0],
		MaxGain:    gains[0],
	}

	sum := 0
	for _, g := range gains {
		sum += g
		res.MinGain = min(res.MinGain, g)
		res.MaxGain = max(res.MaxGain, g)
	}
	res.MeanGain = float64(sum) / float64(len(gains))

	if res.MaxGain > 0 {
		res.Depth = float64(res.MaxGain-res.MinGain) / float64(res.MaxGain)
	}
	res.DepthDB = depthDB(res.MinGain, res.MaxGain)

	if res.MinGain == res.MaxGain {
		return res, nil
	}

	trace := core.IntsToFloats(gains)
	for i := range trace {
		trace[i] -= res.MeanGain
	}
	window.Apply(window.TypeHann, trace, window.WithPeriodic())

	mag, fftSize, err := magnitudeSpectrum(trace)
	if err != nil {
		return Result{}, err
	}
	res.FFTSize = fftSize

	peak := peakBin(mag)
	if peak <= 0 {
		return res, nil
	}

	res.RateHz = refineBin(mag, peak) * sampleRate / float64(fftSize)
	if res.RateHz > 0 {
		res.PeriodSamples = sampleRate / res.RateHz
	}

	return res, nil
}

// magnitudeSpectrum returns |X[k]| for k in [0, N/2] of the zero-padded FFT.
func magnitudeSpectrum(signal []float64) ([]float64, int, error) {
	fftSize := nextPowerOf2(len(signal))

	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("lfo fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("lfo fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, fftSize, nil
}

// peakBin returns the strongest non-DC bin, or 0 if none stands out.
func peakBin(mag []float64) int {
	peak := 0
	best := 0.0
	for k := 1; k < len(mag); k++ {
		if mag[k] > best {
			best = mag[k]
			peak = k
		}
	}
	return peak
}

// refineBin fits a parabola through the peak and its neighbours.
func refineBin(mag []float64, k int) float64 {
	if k <= 0 || k >= len(mag)-1 {
		return float64(k)
	}

	a, b, c := mag[k-1], mag[k], mag[k+1]
	den := a - 2*b + c
	if den == 0 {
		return float64(k)
	}

	offset := 0.5 * (a - c) / den
	if offset < -0.5 || offset > 0.5 {
		return float64(k)
	}

	return float64(k) + offset
}

func depthDB(minGain, maxGain int) float64 {
	if maxGain <= 0 || minGain == maxGain {
		return 0
	}
	if minGain <= 0 {
		return math.Inf(1)
	}
	return 20 * approx.FastLog(float64(maxGain)/float64(minGain)) / math.Ln10
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

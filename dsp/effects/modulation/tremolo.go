package modulation

import (
	"fmt"
	"math"
)

const (
	defaultTremoloWaveform    = WaveformTriangle
	defaultTremoloCycleLength = 4800
	defaultTremoloMinGain     = 64
	defaultTremoloMaxGain     = 256
	defaultTremoloShift       = 8

	// minTremoloCycleLength keeps half_cycle_len/2 >= 1 for the triangle slope.
	minTremoloCycleLength = 4
	maxTremoloGain        = math.MaxUint16
	maxTremoloShift       = 16
)

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	waveform    Waveform
	cycleLength int
	minGain     int
	maxGain     int
	shift       int
}

func defaultTremoloConfig() tremoloConfig {
	return tremoloConfig{
		waveform:    defaultTremoloWaveform,
		cycleLength: defaultTremoloCycleLength,
		minGain:     defaultTremoloMinGain,
		maxGain:     defaultTremoloMaxGain,
		shift:       defaultTremoloShift,
	}
}

// WithTremoloWaveform selects the modulation shape.
func WithTremoloWaveform(w Waveform) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if !w.valid() {
			return fmt.Errorf("tremolo waveform is not supported: %d", int(w))
		}
		cfg.waveform = w
		return nil
	}
}

// WithTremoloCycleLength sets the number of samples per modulation period.
func WithTremoloCycleLength(samples int) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if samples < minTremoloCycleLength {
			return fmt.Errorf("tremolo cycle length must be >= %d: %d", minTremoloCycleLength, samples)
		}
		cfg.cycleLength = samples
		return nil
	}
}

// WithTremoloGainRange sets the gain bounds in 2^shift fixed-point units.
func WithTremoloGainRange(minGain, maxGain int) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if minGain < 0 {
			return fmt.Errorf("tremolo min gain must be >= 0: %d", minGain)
		}
		if minGain >= maxGain {
			return fmt.Errorf("tremolo min gain must be < max gain: %d >= %d", minGain, maxGain)
		}
		if maxGain > maxTremoloGain {
			return fmt.Errorf("tremolo max gain must be <= %d: %d", maxTremoloGain, maxGain)
		}
		cfg.minGain = minGain
		cfg.maxGain = maxGain
		return nil
	}
}

// WithTremoloShift sets the right shift that rescales sample*gain back to
// the sample range.
func WithTremoloShift(shift int) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if shift < 0 || shift > maxTremoloShift {
			return fmt.Errorf("tremolo shift must be in [0, %d]: %d", maxTremoloShift, shift)
		}
		cfg.shift = shift
		return nil
	}
}

// Tremolo is a fixed-point amplitude modulator driven by a sample counter.
//
// Each call to [Tremolo.Process] steps the counter, updates the gain by the
// configured waveform rule and returns (sample*gain)>>shift. The gain never
// leaves [MinGain, MaxGain].
//
// A Tremolo holds per-stream state and is not safe for concurrent use. Use
// [Tremolo.Clone] to run several streams from one configuration.
type Tremolo struct {
	waveform     Waveform
	cycleLen     int
	halfCycleLen int
	minGain      int
	maxGain      int
	shift        uint
	sawInc       int
	triInc       int
	rule         gainRule

	counter   int
	gain      int
	direction Direction
}

// NewTremolo creates a tremolo with the original simulation defaults
// (triangle, 4800-sample cycle, gain 64..256, shift 8) and optional overrides.
func NewTremolo(opts ...TremoloOption) (*Tremolo, error) {
	cfg := defaultTremoloConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	half := cfg.cycleLength / 2
	gainRange := cfg.maxGain - cfg.minGain

	t := &Tremolo{
		waveform:     cfg.waveform,
		cycleLen:     cfg.cycleLength,
		halfCycleLen: half,
		minGain:      cfg.minGain,
		maxGain:      cfg.maxGain,
		shift:        uint(cfg.shift),
		sawInc:       max(1, gainRange/half),
		triInc:       max(1, gainRange/(half/2)),
		rule:         gainRules[cfg.waveform],
	}
	t.Reset()
	return t, nil
}

func (cfg tremoloConfig) validate() error {
	if !cfg.waveform.valid() {
		return fmt.Errorf("tremolo waveform is not supported: %d", int(cfg.waveform))
	}
	if cfg.cycleLength < minTremoloCycleLength {
		return fmt.Errorf("tremolo cycle length must be >= %d: %d", minTremoloCycleLength, cfg.cycleLength)
	}
	if cfg.minGain < 0 || cfg.minGain >= cfg.maxGain || cfg.maxGain > maxTremoloGain {
		return fmt.Errorf("tremolo gain range is invalid: [%d, %d]", cfg.minGain, cfg.maxGain)
	}
	if cfg.shift < 0 || cfg.shift > maxTremoloShift {
		return fmt.Errorf("tremolo shift must be in [0, %d]: %d", maxTremoloShift, cfg.shift)
	}
	// Full volume must not exceed unity or the product leaves the int16 range.
	if cfg.maxGain > 1<<cfg.shift {
		return fmt.Errorf("tremolo max gain %d exceeds unity gain %d for shift %d", cfg.maxGain, 1<<cfg.shift, cfg.shift)
	}
	return nil
}

// Reset restores the initial state: counter 0, minimum gain, rising.
func (t *Tremolo) Reset() {
	t.counter = 0
	t.gain = t.minGain
	t.direction = DirectionRising
}

// Clone returns an independent generator with the same configuration and
// current state.
func (t *Tremolo) Clone() *Tremolo {
	c := *t
	return &c
}

// NextGain advances the generator by one sample and returns the new gain.
func (t *Tremolo) NextGain() int {
	t.counter++
	if t.counter >= t.cycleLen {
		t.counter = 0
	}
	t.rule(t)
	return t.gain
}

// Process advances the generator and applies the gain to one sample.
func (t *Tremolo) Process(sample int16) int16 {
	gain := t.NextGain()
	return int16((int32(sample) * int32(gain)) >> t.shift)
}

// ProcessSample is an alias for Process.
func (t *Tremolo) ProcessSample(sample int16) int16 {
	return t.Process(sample)
}

// ProcessInPlace applies tremolo to buf in place.
func (t *Tremolo) ProcessInPlace(buf []int16) error {
	for i := range buf {
		buf[i] = t.Process(buf[i])
	}
	return nil
}

// ProcessBlock applies tremolo to src and writes the result to dst.
func (t *Tremolo) ProcessBlock(dst, src []int16) error {
	if len(dst) != len(src) {
		return fmt.Errorf("tremolo block length mismatch: dst=%d src=%d", len(dst), len(src))
	}
	for i, s := range src {
		dst[i] = t.Process(s)
	}
	return nil
}

// Counter returns the position within the current cycle, in [0, CycleLength).
func (t *Tremolo) Counter() int { return t.counter }

// Gain returns the most recent gain.
func (t *Tremolo) Gain() int { return t.gain }

// Direction returns the triangle slope direction.
func (t *Tremolo) Direction() Direction { return t.direction }

// Waveform returns the configured waveform.
func (t *Tremolo) Waveform() Waveform { return t.waveform }

// CycleLength returns the samples per modulation period.
func (t *Tremolo) CycleLength() int { return t.cycleLen }

// HalfCycleLength returns CycleLength/2.
func (t *Tremolo) HalfCycleLength() int { return t.halfCycleLen }

// MinGain returns the lower gain bound.
func (t *Tremolo) MinGain() int { return t.minGain }

// MaxGain returns the upper gain bound.
func (t *Tremolo) MaxGain() int { return t.maxGain }

// Shift returns the normalization shift.
func (t *Tremolo) Shift() int { return int(t.shift) }

// SawIncrement returns the per-sample sawtooth slope, at least 1.
func (t *Tremolo) SawIncrement() int { return t.sawInc }

// TriangleIncrement returns the per-sample triangle slope magnitude, at least 1.
func (t *Tremolo) TriangleIncrement() int { return t.triInc }

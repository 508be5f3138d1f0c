package modulation

import (
	"fmt"
	"strings"

	"github.com/cboule/tremolo-dsp/dsp/core"
)

// Waveform selects the gain update rule of a [Tremolo].
type Waveform int

const (
	// WaveformSquare switches between minimum and maximum gain at the half cycle.
	WaveformSquare Waveform = iota
	// WaveformSawtooth ramps up from minimum gain and restarts on every cycle wrap.
	WaveformSawtooth
	// WaveformTriangle bounces between the gain bounds.
	WaveformTriangle

	waveformCount
)

var waveformNames = [waveformCount]string{
	WaveformSquare:   "square",
	WaveformSawtooth: "sawtooth",
	WaveformTriangle: "triangle",
}

// String returns the lower-case waveform name.
func (w Waveform) String() string {
	if !w.valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a waveform by name. "saw" and "tri" are accepted as
// short forms.
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square", "sqr":
		return WaveformSquare, nil
	case "sawtooth", "saw":
		return WaveformSawtooth, nil
	case "triangle", "tri":
		return WaveformTriangle, nil
	default:
		return 0, fmt.Errorf("unknown tremolo waveform: %q", name)
	}
}

// Waveforms returns all supported waveforms in declaration order.
func Waveforms() []Waveform {
	return []Waveform{WaveformSquare, WaveformSawtooth, WaveformTriangle}
}

func (w Waveform) valid() bool {
	return w >= 0 && w < waveformCount
}

// Direction is the slope sign of the triangle waveform.
type Direction int8

const (
	DirectionFalling Direction = -1
	DirectionRising  Direction = 1
)

// String returns "rising" or "falling".
func (d Direction) String() string {
	if d < 0 {
		return "falling"
	}
	return "rising"
}

// gainRule advances the gain of t by one sample. The counter has already
// been stepped when a rule runs.
type gainRule func(t *Tremolo)

var gainRules = [waveformCount]gainRule{
	WaveformSquare:   squareRule,
	WaveformSawtooth: sawtoothRule,
	WaveformTriangle: triangleRule,
}

// squareRule is a pure function of the counter position.
func squareRule(t *Tremolo) {
	if t.counter < t.halfCycleLen {
		t.gain = t.minGain
	} else {
		t.gain = t.maxGain
	}
}

func sawtoothRule(t *Tremolo) {
	if t.counter == 0 {
		t.gain = t.minGain
	} else {
		t.gain += t.sawInc
	}
	if t.gain > t.maxGain {
		t.gain = t.maxGain
	}
}

// triangleRule flips direction on the gain bounds only; the counter does
// not shape the triangle.
func triangleRule(t *Tremolo) {
	if t.gain >= t.maxGain {
		t.direction = DirectionFalling
	} else if t.gain <= t.minGain {
		t.direction = DirectionRising
	}

	t.gain = core.ClampInt(t.gain+int(t.direction)*t.triInc, t.minGain, t.maxGain)
}

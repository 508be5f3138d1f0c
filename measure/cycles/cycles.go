package cycles

import (
	"fmt"

	"github.com/cboule/tremolo-dsp/dsp/effects/modulation"
)

// Range is an inclusive cycle-count interval.
type Range struct {
	Min int64
	Max int64
}

// Add returns the interval sum of r and o.
func (r Range) Add(o Range) Range {
	return Range{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// Scale multiplies both bounds by n.
func (r Range) Scale(n int64) Range {
	return Range{Min: r.Min * n, Max: r.Max * n}
}

// String formats r as "min-max", or a single value when the bounds match.
func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Operation is one step of the per-sample tremolo work.
type Operation int

const (
	OpCounterIncrement Operation = iota
	OpCompareReset
	OpWaveformSwitch
	OpSquareAssign
	OpRampStep
	OpMultiply
	OpShift

	operationCount
)

// Cost is the cycle cost of one operation on each target.
type Cost struct {
	Op   Operation
	Name string
	CPU  Range
	FPGA Range
}

var costTable = [operationCount]Cost{
	{Op: OpCounterIncrement, Name: "counter increment", CPU: Range{1, 1}, FPGA: Range{0, 1}},
	{Op: OpCompareReset, Name: "compare and conditional reset", CPU: Range{1, 3}, FPGA: Range{0, 0}},
	{Op: OpWaveformSwitch, Name: "waveform switch", CPU: Range{3, 5}, FPGA: Range{0, 0}},
	{Op: OpSquareAssign, Name: "square gain assign", CPU: Range{1, 3}, FPGA: Range{0, 0}},
	{Op: OpRampStep, Name: "sawtooth/triangle gain step", CPU: Range{2, 10}, FPGA: Range{0, 1}},
	{Op: OpMultiply, Name: "sample * gain", CPU: Range{1, 3}, FPGA: Range{1, 1}},
	{Op: OpShift, Name: "normalization shift", CPU: Range{1, 1}, FPGA: Range{0, 0}},
}

// Published per-sample CPU totals. These differ from the sum of the table.
var publishedCPU = map[modulation.Waveform]Range{
	modulation.WaveformSquare:   {7, 13},
	modulation.WaveformSawtooth: {12, 20},
	modulation.WaveformTriangle: {15, 23},
}

// fpgaCyclesPerSample is the pipelined latency of one sample on the FPGA.
const fpgaCyclesPerSample = 1

// String returns the operation name.
func (op Operation) String() string {
	if op < 0 || op >= operationCount {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return costTable[op].Name
}

// Table returns the per-operation cost table.
func Table() []Cost {
	out := make([]Cost, len(costTable))
	copy(out, costTable[:])
	return out
}

// Operations lists the steps one sample of w executes, in order.
func Operations(w modulation.Waveform) ([]Operation, error) {
	gainOp := OpRampStep
	switch w {
	case modulation.WaveformSquare:
		gainOp = OpSquareAssign
	case modulation.WaveformSawtooth, modulation.WaveformTriangle:
	default:
		return nil, fmt.Errorf("cycles: unsupported waveform: %v", w)
	}

	return []Operation{
		OpCounterIncrement,
		OpCompareReset,
		OpWaveformSwitch,
		gainOp,
		OpMultiply,
		OpShift,
	}, nil
}

// PerSample is the cost of processing one sample with one tremolo.
type PerSample struct {
	Waveform modulation.Waveform
	// CPU is the published CPU total for the waveform.
	CPU Range
	// FPGA is the pipelined FPGA latency in cycles.
	FPGA int64
	// CPUBreakdown and FPGABreakdown are the sums of the operation table.
	CPUBreakdown  Range
	FPGABreakdown Range
}

// Estimate returns the per-sample cost of w.
func Estimate(w modulation.Waveform) (PerSample, error) {
	ops, err := Operations(w)
	if err != nil {
		return PerSample{}, err
	}

	est := PerSample{
		Waveform: w,
		CPU:      publishedCPU[w],
		FPGA:     fpgaCyclesPerSample,
	}
	for _, op := range ops {
		est.CPUBreakdown = est.CPUBreakdown.Add(costTable[op].CPU)
		est.FPGABreakdown = est.FPGABreakdown.Add(costTable[op].FPGA)
	}
	return est, nil
}

// Run is the cost of processing a whole buffer through a chain of effects.
type Run struct {
	PerSample
	Samples int
	Effects int
	// CPUCycles grows with Effects; FPGACycles does not.
	CPUCycles  Range
	FPGACycles int64
}

// EstimateRun returns the cost of samples samples through effects tremolos
// chained in series.
func EstimateRun(w modulation.Waveform, samples, effects int) (Run, error) {
	if samples < 0 {
		return Run{}, fmt.Errorf("cycles: sample count must be >= 0: %d", samples)
	}
	if effects < 1 {
		return Run{}, fmt.Errorf("cycles: effect count must be >= 1: %d", effects)
	}

	ps, err := Estimate(w)
	if err != nil {
		return Run{}, err
	}

	return Run{
		PerSample:  ps,
		Samples:    samples,
		Effects:    effects,
		CPUCycles:  ps.CPU.Scale(int64(effects)).Scale(int64(samples)),
		FPGACycles: ps.FPGA * int64(samples),
	}, nil
}

// Speedup returns the FPGA speedup bounds for the run.
func (r Run) Speedup() (lo, hi float64) {
	per := r.CPU.Scale(int64(r.Effects))
	return float64(per.Min) / float64(r.FPGA), float64(per.Max) / float64(r.FPGA)
}

// RequiredClockHz returns the CPU clock needed to keep up with sampleRate,
// and the FPGA clock for the same.
func (r Run) RequiredClockHz(sampleRate float64) (cpu Range, fpga float64) {
	per := r.CPU.Scale(int64(r.Effects))
	return Range{
		Min: int64(float64(per.Min) * sampleRate),
		Max: int64(float64(per.Max) * sampleRate),
	}, float64(r.FPGA) * sampleRate
}

// Command tremolosim runs the fixed-point tremolo over a dummy ramp signal and
// reports its output, modulation and estimated CPU versus FPGA cost.
//
// Usage:
//
//	tremolosim [flags]
//
// Examples:
//
//	tremolosim
//	tremolosim -wave square -cycle 10 -print 20
//	tremolosim -wave triangle -cost -effects 4
//	tremolosim -analyze -plot trace.png
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cboule/tremolo-dsp/dsp/effects/modulation"
	"github.com/cboule/tremolo-dsp/internal/cpu"
	"github.com/cboule/tremolo-dsp/internal/traceplot"
	"github.com/cboule/tremolo-dsp/measure/cycles"
	"github.com/cboule/tremolo-dsp/measure/lfo"
	timestats "github.com/cboule/tremolo-dsp/stats/time"
)

type config struct {
	wave       string
	samples    int
	cycle      int
	minGain    int
	maxGain    int
	shift      int
	print      int
	sampleRate float64
	effects    int
	cost       bool
	analyze    bool
	plotPath   string
	plotPoints int
}

func main() {
	var cfg config
	flag.StringVar(&cfg.wave, "wave", "triangle", "modulation waveform: square, sawtooth or triangle")
	flag.IntVar(&cfg.samples, "samples", 48000, "number of samples to process")
	flag.IntVar(&cfg.cycle, "cycle", 4800, "samples per LFO cycle")
	flag.IntVar(&cfg.minGain, "min", 64, "minimum gain in 2^shift units")
	flag.IntVar(&cfg.maxGain, "max", 256, "maximum gain in 2^shift units")
	flag.IntVar(&cfg.shift, "shift", 8, "normalization right shift")
	flag.IntVar(&cfg.print, "print", 20, "number of output samples to print")
	flag.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz for analysis and clock estimates")
	flag.IntVar(&cfg.effects, "effects", 1, "number of tremolos chained in series for the cost estimate")
	flag.BoolVar(&cfg.cost, "cost", false, "print the CPU vs FPGA cycle estimate")
	flag.BoolVar(&cfg.analyze, "analyze", false, "print LFO analysis and output statistics")
	flag.StringVar(&cfg.plotPath, "plot", "", "write a PNG plot of gain and output to this file")
	flag.IntVar(&cfg.plotPoints, "plot-points", 0, "limit plotted samples (0 plots all)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tremolosim [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the fixed-point tremolo over a ramp and prints the first outputs.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tremolosim -wave square -cycle 10\n")
		fmt.Fprintf(os.Stderr, "  tremolosim -cost -effects 4\n")
		fmt.Fprintf(os.Stderr, "  tremolosim -analyze -plot trace.png\n")
	}
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, w io.Writer) error {
	if cfg.samples <= 0 {
		return fmt.Errorf("sample count must be > 0: %d", cfg.samples)
	}

	wave, err := modulation.ParseWaveform(cfg.wave)
	if err != nil {
		return err
	}

	tm, err := modulation.NewTremolo(
		modulation.WithTremoloWaveform(wave),
		modulation.WithTremoloCycleLength(cfg.cycle),
		modulation.WithTremoloGainRange(cfg.minGain, cfg.maxGain),
		modulation.WithTremoloShift(cfg.shift),
	)
	if err != nil {
		return err
	}

	input := rampInput(cfg.samples)
	output, gains := simulate(tm, input)

	if err := printSamples(w, output, cfg.print); err != nil {
		return err
	}

	if cfg.cost {
		if err := printCost(w, wave, cfg.samples, cfg.effects, cfg.sampleRate); err != nil {
			return err
		}
	}

	if cfg.analyze {
		if err := printAnalysis(w, gains, output, cfg.sampleRate); err != nil {
			return err
		}
	}

	if cfg.plotPath != "" {
		tr := traceplot.Trace{
			Title:  fmt.Sprintf("%s tremolo, %d-sample cycle", wave, cfg.cycle),
			Gains:  gains,
			Output: output,
		}
		if err := writePlot(cfg.plotPath, tr, cfg.plotPoints); err != nil {
			return err
		}
	}

	return nil
}

// rampInput fills a buffer with the dummy audio ramp (i % 100) - 50.
func rampInput(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i%100 - 50)
	}
	return out
}

func simulate(tm *modulation.Tremolo, input []int16) ([]int16, []int) {
	output := make([]int16, len(input))
	gains := make([]int, len(input))
	for i, s := range input {
		output[i] = tm.Process(s)
		gains[i] = tm.Gain()
	}
	return output, gains
}

func printSamples(w io.Writer, output []int16, n int) error {
	n = min(max(n, 0), len(output))
	for _, s := range output[:n] {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	return nil
}

func printCost(w io.Writer, wave modulation.Waveform, samples, effects int, sampleRate float64) error {
	est, err := cycles.EstimateRun(wave, samples, effects)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nCycle estimate (%s, %d samples, %d effect(s) in series, host %s)\n\n",
		wave, samples, effects, cpu.DetectFeatures()); err != nil {
		return fmt.Errorf("failed to write cost header: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Operation\tCPU cycles\tFPGA cycles\n")
	fmt.Fprintf(tw, "---------\t----------\t-----------\n")

	ops, err := cycles.Operations(wave)
	if err != nil {
		return err
	}
	table := cycles.Table()
	for _, op := range ops {
		c := table[op]
		fmt.Fprintf(tw, "%s\t%v\t%v\n", c.Name, c.CPU, c.FPGA)
	}
	fmt.Fprintf(tw, "sum of operations\t%v\t%v\n", est.CPUBreakdown, est.FPGABreakdown)
	fmt.Fprintf(tw, "per sample\t%v\t%d\n", est.CPU.Scale(int64(effects)), est.FPGA)
	fmt.Fprintf(tw, "whole run\t%v\t%d\n", est.CPUCycles, est.FPGACycles)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush cost table: %w", err)
	}

	lo, hi := est.Speedup()
	cpuHz, fpgaHz := est.RequiredClockHz(sampleRate)
	if _, err := fmt.Fprintf(w, "\nFPGA speedup: %.0f-%.0fx\nClock for %.0f Hz real time: CPU %.2f-%.2f MHz, FPGA %.2f MHz\n",
		lo, hi, sampleRate, float64(cpuHz.Min)/1e6, float64(cpuHz.Max)/1e6, fpgaHz/1e6); err != nil {
		return fmt.Errorf("failed to write speedup: %w", err)
	}
	return nil
}

func printAnalysis(w io.Writer, gains []int, output []int16, sampleRate float64) error {
	res, err := lfo.Analyze(gains, sampleRate)
	if err != nil {
		return err
	}
	st := timestats.Calculate(output)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nLFO rate\t%.3f Hz\n", res.RateHz)
	fmt.Fprintf(tw, "LFO period\t%.1f samples\n", res.PeriodSamples)
	fmt.Fprintf(tw, "Gain range\t[%d, %d] mean %.1f\n", res.MinGain, res.MaxGain, res.MeanGain)
	fmt.Fprintf(tw, "Depth\t%.3f (%.2f dB)\n", res.Depth, res.DepthDB)
	fmt.Fprintf(tw, "Output peak\t%d (%.2f dBFS)\n", st.Peak, st.Peak_dBFS)
	fmt.Fprintf(tw, "Output RMS\t%.2f (%.2f dBFS)\n", st.RMS, st.RMS_dBFS)
	fmt.Fprintf(tw, "Zero crossings\t%d\n", st.ZeroCrossings)
	fmt.Fprintf(tw, "Digest\t%016x\n", st.Digest)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush analysis: %w", err)
	}
	return nil
}

func writePlot(path string, tr traceplot.Trace, maxPoints int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close plot file: %w", cerr)
		}
	}()

	return traceplot.WritePNG(f, tr, traceplot.Options{MaxPoints: maxPoints})
}

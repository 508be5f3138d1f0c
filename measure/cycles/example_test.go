package cycles_test

import (
	"fmt"

	"github.com/cboule/tremolo-dsp/dsp/effects/modulation"
	"github.com/cboule/tremolo-dsp/measure/cycles"
)

func ExampleEstimateRun() {
	run, err := cycles.EstimateRun(modulation.WaveformTriangle, 48000, 1)
	if err != nil {
		fmt.Println("error")
		return
	}

	lo, hi := run.Speedup()
	fmt.Printf("cpu=%v fpga=%d speedup=%.0f-%.0fx\n", run.CPUCycles, run.FPGACycles, lo, hi)
	// Output:
	// cpu=720000-1104000 fpga=48000 speedup=15-23x
}

package lfo_test

import (
	"fmt"

	"github.com/cboule/tremolo-dsp/dsp/effects/modulation"
	"github.com/cboule/tremolo-dsp/measure/lfo"
)

func ExampleAnalyze() {
	tm, err := modulation.NewTremolo(
		modulation.WithTremoloWaveform(modulation.WaveformSquare),
		modulation.WithTremoloCycleLength(480),
	)
	if err != nil {
		fmt.Println("error")
		return
	}

	gains := make([]int, 4800)
	for i := range gains {
		gains[i] = tm.NextGain()
	}

	res, err := lfo.Analyze(gains, 48000)
	if err != nil {
		fmt.Println("error")
		return
	}

	fmt.Printf("depth=%.2f gain=[%d, %d]\n", res.Depth, res.MinGain, res.MaxGain)
	// Output:
	// depth=0.75 gain=[64, 256]
}

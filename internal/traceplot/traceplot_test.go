package traceplot

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/cboule/tremolo-dsp/dsp/effects/modulation"
	"github.com/cboule/tremolo-dsp/internal/testutil"
	"gonum.org/v1/plot/vg"
)

func TestWritePNG(t *testing.T) {
	tm, err := modulation.NewTremolo(modulation.WithTremoloCycleLength(100))
	if err != nil {
		t.Fatalf("NewTremolo() error = %v", err)
	}

	input := testutil.Ramp(400)
	tr := Trace{Title: "triangle", Gains: make([]int, len(input)), Output: make([]int16, len(input))}
	for i, s := range input {
		tr.Output[i] = tm.Process(s)
		tr.Gains[i] = tm.Gain()
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, tr, Options{Width: 8 * vg.Centimeter, Height: 6 * vg.Centimeter, MaxPoints: 200}); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("empty image bounds %v", b)
	}
}

func TestWritePNGGainsOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, Trace{Gains: []int{64, 128, 256, 128}}, Options{}); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("WritePNG() wrote nothing")
	}
}

func TestWritePNGValidation(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, Trace{}, Options{}); err == nil {
		t.Fatal("WritePNG() expected error for empty trace")
	}
	if err := WritePNG(&buf, Trace{Gains: []int{1, 2}, Output: []int16{1}}, Options{}); err == nil {
		t.Fatal("WritePNG() expected error for length mismatch")
	}
}

package window

import (
	"math"
	"testing"

	"github.com/cboule/tremolo-dsp/internal/testutil"
)

func TestGenerateEdges(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		edge  float64
		peak  float64
	}{
		{name: "rectangular", typ: TypeRectangular, edge: 1, peak: 1},
		{name: "hann", typ: TypeHann, edge: 0, peak: 1},
		{name: "hamming", typ: TypeHamming, edge: 0.08, peak: 1},
		{name: "blackman", typ: TypeBlackman, edge: 0, peak: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Generate(tt.typ, 65)
			if math.Abs(w[0]-tt.edge) > 1e-12 || math.Abs(w[64]-tt.edge) > 1e-12 {
				t.Fatalf("edges = %v, %v; want %v", w[0], w[64], tt.edge)
			}
			if math.Abs(w[32]-tt.peak) > 1e-12 {
				t.Fatalf("centre = %v, want %v", w[32], tt.peak)
			}
			for i := range w {
				if math.Abs(w[i]-w[64-i]) > 1e-12 {
					t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[64-i])
				}
			}
		})
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if math.Abs(w[0]) > 1e-12 || math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("periodic hann = %v", w)
	}
	if got := CoherentGain(w); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("CoherentGain() = %v, want 0.5", got)
	}
}

func TestGenerateEmpty(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}
	if CoherentGain(nil) != 0 {
		t.Fatal("expected zero coherent gain for empty window")
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)

	want := Generate(TypeHann, len(buf))
	for i := range want {
		want[i] *= 2
	}
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)

	Apply(TypeHann, nil)
}

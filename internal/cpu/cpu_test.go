package cpu

import (
	"runtime"
	"testing"
)

func TestDetectFeaturesArchitecture(t *testing.T) {
	ResetDetection()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}
	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Fatal("amd64 without SSE2")
	}
}

func TestForcedFeatures(t *testing.T) {
	t.Cleanup(ResetDetection)

	SetForcedFeatures(Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"})

	f := DetectFeatures()
	if f.BestSIMD() != SIMDAVX2 {
		t.Fatalf("BestSIMD() = %v, want AVX2", f.BestSIMD())
	}
	if s := f.String(); s != "amd64 (SSE2, AVX2)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestFeaturesWithoutSIMD(t *testing.T) {
	f := Features{Architecture: "riscv64"}
	if f.BestSIMD() != SIMDNone {
		t.Fatalf("BestSIMD() = %v, want None", f.BestSIMD())
	}
	if s := f.String(); s != "riscv64 (None)" {
		t.Fatalf("String() = %q", s)
	}
	if s := SIMDLevel(99).String(); s != "Unknown" {
		t.Fatalf("String() = %q", s)
	}
}

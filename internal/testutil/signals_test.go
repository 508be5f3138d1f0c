package testutil

import "testing"

func TestRamp(t *testing.T) {
	r := Ramp(201)
	if r[0] != -50 || r[99] != 49 || r[100] != -50 || r[200] != -50 {
		t.Fatalf("unexpected ramp values: %d %d %d %d", r[0], r[99], r[100], r[200])
	}
}

func TestDeterministicNoise16(t *testing.T) {
	a := DeterministicNoise16(42, 1000, 256)
	b := DeterministicNoise16(42, 1000, 256)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1000 || a[i] > 1000 {
			t.Fatalf("a[%d] = %d out of range", i, a[i])
		}
	}
}

func TestDC16(t *testing.T) {
	for i, v := range DC16(100, 8) {
		if v != 100 {
			t.Fatalf("DC16[%d] = %d, want 100", i, v)
		}
	}
}

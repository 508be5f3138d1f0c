package core

// int16Scale maps the int16 range onto [-1, 1).
const int16Scale = 1 << 15

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// Int16ToFloat converts a Q15 sample to a float in [-1, 1).
func Int16ToFloat(s int16) float64 {
	return float64(s) / int16Scale
}

// IntsToFloats returns src as a new float64 slice.
func IntsToFloats(src []int) []float64 {
	if len(src) == 0 {
		return nil
	}

	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}

	return out
}

package service

import "math"

// RollingSMA computes the trailing simple moving average of values over the
// given window. Positions with fewer than window prior observations are NaN:
// leading rows are undefined, not zero-padded or partial-window averaged.
func RollingSMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(values) < window {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

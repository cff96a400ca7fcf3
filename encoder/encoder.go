// Package encoder provides the pure functions that turn an analog sensor
// reading in [0, 1] into the firing period of a sensory neuron.
package encoder

import "math"

// Func maps an analog measurement to a firing period. A period of 0 means
// the sensory neuron never fires.
type Func func(measurement float64) uint64

// EMA returns the period of a periodically-pulsed signal whose exponential
// moving average (with smoothing constant alpha) would peak at measurement.
// A non-positive measurement silences the neuron (period 0), since the
// underlying logarithm is undefined there.
func EMA(alpha float64) Func {
	return func(measurement float64) uint64 {
		if measurement <= 0 {
			return 0
		}
		period := math.Log(1-alpha/measurement)/math.Log(1-alpha) + 1
		return roundPeriod(period)
	}
}

// Linear maps measurement through the line passing through (0, y0) and
// (1, 1), so Linear(y0)(1) == 1 regardless of y0.
func Linear(y0 float64) Func {
	return func(measurement float64) uint64 {
		period := (1-y0)*measurement + y0
		return roundPeriod(period)
	}
}

// Inverse maps measurement through 1/measurement, so Inverse(1) == 1. A
// non-positive measurement silences the neuron (period 0).
func Inverse(measurement float64) uint64 {
	if measurement <= 0 {
		return 0
	}
	return roundPeriod(1 / measurement)
}

func roundPeriod(period float64) uint64 {
	rounded := math.Round(period)
	if rounded <= 0 {
		return 0
	}
	return uint64(rounded)
}

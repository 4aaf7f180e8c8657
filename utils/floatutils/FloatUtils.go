// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// maxSlice gets the maximum value and indices of the maximum values in
// a slice of float64. Indices are returned in increasing order so that
// indices[0] is the lowest index achieving the maximum.
func maxSlice(values []float64) (max float64, indices []int) {
	max, indices = values[0], []int{0}

	for i := 1; i < len(values); i++ {
		value := values[i]
		if value > max {
			max = value
			indices = []int{i}
		} else if value == max {
			indices = append(indices, i)
		}
	}
	return
}

// ArgMax returns the lowest index of the maximum value in values
func ArgMax(values []float64) int {
	_, indices := maxSlice(values)
	return indices[0]
}

// Package core provides small integer helpers shared by the simulation packages.
// It contains no external dependencies to keep game logic pure and testable.
package core

import "math"

// floorEpsilon absorbs binary float error so 0.29*100 floors to 29, not 28.
const floorEpsilon = 1e-9

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FloorMul returns floor(val * factor).
func FloorMul(val int, factor float64) int {
	return int(math.Floor(float64(val)*factor + floorEpsilon))
}

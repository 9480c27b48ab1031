package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max int
		expected      int
	}{
		{"within range", 5, 0, 10, 5},
		{"below min", -5, 0, 10, 0},
		{"above max", 15, 0, 10, 10},
		{"at min", 0, 0, 10, 0},
		{"at max", 10, 0, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Clamp(tc.val, tc.min, tc.max)
			if result != tc.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
					tc.val, tc.min, tc.max, result, tc.expected)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	if Abs(-7) != 7 {
		t.Errorf("Abs(-7) = %d, expected 7", Abs(-7))
	}
	if Abs(3) != 3 {
		t.Errorf("Abs(3) = %d, expected 3", Abs(3))
	}
	if Abs(0) != 0 {
		t.Errorf("Abs(0) = %d, expected 0", Abs(0))
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 9) != 2 || Min(9, 2) != 2 {
		t.Error("Min should return the smaller value")
	}
	if Max(2, 9) != 9 || Max(9, 2) != 9 {
		t.Error("Max should return the larger value")
	}
}

func TestFloorMul(t *testing.T) {
	tests := []struct {
		name     string
		val      int
		factor   float64
		expected int
	}{
		{"identity", 100, 1.0, 100},
		{"skill multiplier", 33, 1.5, 49},
		{"ultimate multiplier", 45, 2.5, 112},
		{"percentage", 200, 0.2, 40},
		{"float error", 100, 0.29, 29},
		{"zero", 0, 2.5, 0},
		{"negative", -3, 1.5, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FloorMul(tc.val, tc.factor); got != tc.expected {
				t.Errorf("FloorMul(%d, %v) = %d, expected %d", tc.val, tc.factor, got, tc.expected)
			}
		})
	}
}

package common

import "math"

const (
	// StepsPerSecond is the fixed simulation rate. Behaviour speeds are
	// written per step.
	StepsPerSecond = 60
	StepDT         = 1.0 / StepsPerSecond

	// Gravity is world units per second squared, Y up.
	Gravity = -25.0
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// PerSecond converts a per-step speed to a velocity.
func PerSecond(perStep float64) float64 {
	return perStep * StepsPerSecond
}

// WorldToScreen maps a Y-up world point onto a Y-down screen centred on the
// world origin.
func WorldToScreen(x, y, ppu float64, screenW, screenH int) (float64, float64) {
	return float64(screenW)/2 + x*ppu, float64(screenH)/2 - y*ppu
}

func Approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

package common

import "testing"

func TestSign(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.5, 1},
		{-0.1, -1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Sign(tt.in); got != tt.want {
			t.Fatalf("Sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWorldToScreen(t *testing.T) {
	x, y := WorldToScreen(2, 1, 10, 200, 100)
	if x != 120 || y != 40 {
		t.Fatalf("expected (120, 40), got (%v, %v)", x, y)
	}
}

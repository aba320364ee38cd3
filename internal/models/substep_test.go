package models

import (
	"math"
	"testing"
)

func TestSubstep(t *testing.T) {
	tests := []struct {
		name      string
		dt, dtMax float64
		wantCalls int
		wantT     float64
	}{
		{"below ceiling is one call", 0.05, 0.1, 1, 0.05},
		{"exact multiple", 1, 0.25, 4, 1},
		{"overshoots the request", 0.6, 0.25, 3, 0.75},
		{"equal to ceiling", 0.25, 0.25, 1, 0.25},
		{"zero is a no-op", 0, 0.25, 0, 0},
		{"negative is a no-op", -1, 0.25, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got := substep(0, tt.dt, tt.dtMax, func(t, h float64) float64 {
				calls++
				return t + h
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if math.Abs(got-tt.wantT) > 1e-12 {
				t.Errorf("time = %g, want %g", got, tt.wantT)
			}
		})
	}
}

func TestSubstepStepSizes(t *testing.T) {
	var sizes []float64
	substep(3, 1, 0.25, func(t, h float64) float64 {
		sizes = append(sizes, h)
		return t + h
	})
	for i, h := range sizes {
		if h != 0.25 {
			t.Errorf("step %d has size %g, want the ceiling", i, h)
		}
	}
}

package config

import "fmt"

// level is one Astrogolf course. Row 0 is always the player; positions lie
// in the x-z plane.
type level struct {
	pos, vel  [][]float64
	masses    []float64
	timeLimit float64
	pinned    []int
}

// Levels are played without normalization so the course layout stays
// where it was drawn.
var levels = []level{
	{
		pos:       [][]float64{{0, 0, 0}},
		vel:       [][]float64{{0, 0, 1}},
		masses:    []float64{1},
		timeLimit: 99,
	},
	{
		pos:       [][]float64{{-10, 0, 3}, {0, 0, 0}},
		vel:       [][]float64{{0, 0, 1}, {0, 0, 0}},
		masses:    []float64{1, 5},
		timeLimit: 5,
	},
	{
		pos:       [][]float64{{-10, 0, 3}, {-2, 0, -2}, {6, 0, 3}},
		vel:       [][]float64{{0, 0, 1}, {2, 0, 5}, {-2, 0, -5}},
		masses:    []float64{1, 5, 5},
		timeLimit: 2.5,
	},
	{
		pos:       [][]float64{{-10, 0, 3}, {5, 0, -18}, {8, 0, -10}, {11, 0, -14}},
		vel:       [][]float64{{0, 0, 1}, {-2, 0, 12}, {-1, 0, 18}, {-3, 0, 15}},
		masses:    []float64{1, 1.5, 1.25, 1},
		timeLimit: 5,
	},
	{
		pos:       [][]float64{{-10, 0, 3}, {0, 0, 0}, {10, 0, 0}},
		vel:       [][]float64{{0, 0, 1}, {0, 0, 0}, {0, 0, 0}},
		masses:    []float64{1, 7, 2},
		timeLimit: 4,
		pinned:    []int{1},
	},
	{
		// negative mass repels
		pos:       [][]float64{{-10, 0, 0}, {11, 0, -3}},
		vel:       [][]float64{{0, 0, 0}, {0, 0, 0}},
		masses:    []float64{1, -3},
		timeLimit: 6,
		pinned:    []int{1},
	},
	{
		pos:       [][]float64{{-10, 0, 0}, {2, 0, 6}, {-3, 0, 0}, {11, 0, -6}, {-13, 0, -7}, {13, 0, 9}},
		vel:       [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {-5, 0, 3}, {8, 0, 0}, {-20, 0, -20}},
		masses:    []float64{1, -3, 3, 1, 2, 1.5},
		timeLimit: 2.5,
		pinned:    []int{1, 2},
	},
	{
		pos:       [][]float64{{-12, 0, -3}, {-6, 0, 8}, {10, 0, 3}},
		vel:       [][]float64{{0, 0, 0}, {10, 0, -7}, {-2, 0, -1}},
		masses:    []float64{1, 1, 5},
		timeLimit: 7,
	},
	{
		pos:       [][]float64{{-16, 0, 7}, {10, 0, -3}, {1, 0, 6}},
		vel:       [][]float64{{0, 0, 0}, {-4, 0, 0}, {2, 0, 1}},
		masses:    []float64{1, 5, 2},
		timeLimit: 20,
	},
	{
		pos:       [][]float64{{-14, 0, 0}, {0, 0, 0}},
		vel:       [][]float64{{0, 0, 0}, {0, 0, 0}},
		masses:    []float64{1, 50},
		timeLimit: 5,
		pinned:    []int{1},
	},
}

// LevelName is the preset name of level i.
func LevelName(i int) string { return fmt.Sprintf("level%d", i) }

// NumLevels is the number of Astrogolf levels.
func NumLevels() int { return len(levels) }

func levelPresets() map[string]*Scenario {
	out := make(map[string]*Scenario, len(levels))
	for i, l := range levels {
		name := LevelName(i)
		out[name] = &Scenario{
			Name:      name,
			Model:     ModelNBody,
			Solver:    DefaultSolver,
			FrameDt:   DefaultFrameDt,
			Duration:  l.timeLimit,
			TimeLimit: l.timeLimit,
			Bodies: BodiesConfig{
				Positions:  l.pos,
				Velocities: l.vel,
				Masses:     l.masses,
				Pinned:     l.pinned,
			},
		}
	}
	return out
}

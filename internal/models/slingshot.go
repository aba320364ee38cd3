package models

import (
	"fmt"

	"github.com/san-kum/astrogolf/internal/body"
)

// Rows of the SlingShot system.
const (
	SunRow = iota
	EarthRow
	JupiterRow
)

const (
	// SatelliteMass is in solar masses (about 1000 kg).
	SatelliteMass = 5.02785e-28
	// LaunchOffset is how far ahead of Earth, in AU, a satellite starts.
	LaunchOffset = 0.001
	// DefaultLaunchScale multiplies Earth's velocity for a new satellite.
	DefaultLaunchScale = 1.4
)

// NewSlingShot builds the Sun, Earth and Jupiter in Kepler units, ready
// for satellites to be launched from Earth.
func NewSlingShot(opts ...Option) (*NModel, error) {
	set, err := body.NewSet(
		[][]float64{{0, 0, 0}, {1, 0, 0}, {5, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 6.3}, {0, 0, 3}},
		[]float64{1, 0.000003003, 0.000954},
	)
	if err != nil {
		return nil, err
	}
	return NewNModel(set, opts...)
}

// Launch appends a satellite just ahead of row from along its direction of
// travel, moving at scale times its velocity. It returns the new row.
func (m *NModel) Launch(from int, scale float64) (int, error) {
	parent, err := m.set.Get(from)
	if err != nil {
		return 0, err
	}
	dir, err := parent.Vel.Unit()
	if err != nil {
		return 0, fmt.Errorf("launch from row %d: %w", from, err)
	}
	pos := parent.Pos.Add(dir.Scale(LaunchOffset))
	vel := parent.Vel.Scale(scale)
	return m.Append(pos, vel, SatelliteMass), nil
}

// LaunchFromEarth launches from EarthRow with DefaultLaunchScale.
func (m *NModel) LaunchFromEarth() (int, error) {
	return m.Launch(EarthRow, DefaultLaunchScale)
}

// Satellites counts rows past Jupiter, assuming a SlingShot layout.
func (m *NModel) Satellites() int {
	if n := m.set.Len() - (JupiterRow + 1); n > 0 {
		return n
	}
	return 0
}

// ClosestApproach returns the smallest distance from row i to any other
// row and that row's index. A lone body reports -1 for both.
func (m *NModel) ClosestApproach(i int) (float64, int, error) {
	b, err := m.set.Get(i)
	if err != nil {
		return 0, 0, err
	}
	best, which := -1.0, -1
	for j := 0; j < m.set.Len(); j++ {
		if j == i {
			continue
		}
		other, _ := m.set.Get(j)
		if d := b.Pos.Dist(other.Pos); best < 0 || d < best {
			best, which = d, j
		}
	}
	return best, which, nil
}

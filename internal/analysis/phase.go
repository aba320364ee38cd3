package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Portrait is a set of phase-space points, one state index per axis.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPortrait takes (x[xIdx], x[yIdx]) from every frame holding both.
func NewPortrait(states []dynamo.State, xIdx, yIdx int) *Portrait {
	p := &Portrait{XIndex: xIdx, YIndex: yIdx, Points: make([]Point, 0, len(states))}
	for _, x := range states {
		if max(xIdx, yIdx) < len(x) && min(xIdx, yIdx) >= 0 {
			p.Points = append(p.Points, Point{x[xIdx], x[yIdx]})
		}
	}
	return p
}

// NewSection records a Poincaré section: each time x[crossIdx] rises
// through threshold, the point (x[xIdx], x[yIdx]) is interpolated between
// the two frames around the crossing.
func NewSection(states []dynamo.State, crossIdx int, threshold float64, xIdx, yIdx int) *Portrait {
	p := &Portrait{XIndex: xIdx, YIndex: yIdx}
	need := max(crossIdx, xIdx, yIdx)
	var prev dynamo.State
	for _, x := range states {
		if need >= len(x) {
			prev = nil
			continue
		}
		if prev != nil && prev[crossIdx] < threshold && x[crossIdx] >= threshold {
			f := (threshold - prev[crossIdx]) / (x[crossIdx] - prev[crossIdx])
			p.Points = append(p.Points, Point{
				X: prev[xIdx] + f*(x[xIdx]-prev[xIdx]),
				Y: prev[yIdx] + f*(x[yIdx]-prev[yIdx]),
			})
		}
		prev = x
	}
	return p
}

// ASCII plots the points on a width by height grid, with axes drawn where
// they cross the plotted range.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	cell := func(x, y float64) (int, int) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col
	}

	for _, pt := range p.Points {
		if row, col := cell(pt.X, pt.Y); row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}
	if minX <= 0 && minX+rangeX >= 0 {
		_, col := cell(0, minY)
		for row := range grid {
			if grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && minY+rangeY >= 0 {
		row, _ := cell(minX, 0)
		for col := range grid[row] {
			if grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, r := range grid {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

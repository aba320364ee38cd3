// Package export renders stored runs as SVG images.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/viz"
)

// ErrNoTracks is returned when there is nothing to draw.
var ErrNoTracks = errors.New("export: no tracks with at least two points")

// Point is a position projected onto the drawing plane.
type Point struct {
	X, Y float64
}

// Plane selects which two coordinates of a body are drawn.
type Plane string

const (
	// PlaneXZ is the orbital plane used by the n-body presets.
	PlaneXZ Plane = "xz"
	PlaneXY Plane = "xy"
	PlaneYZ Plane = "yz"
)

// ParsePlane accepts "xz", "xy" or "yz".
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(strings.ToLower(s)); p {
	case PlaneXZ, PlaneXY, PlaneYZ:
		return p, nil
	}
	return "", fmt.Errorf("export: unknown plane %q", s)
}

func (p Plane) axes() (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneYZ:
		return 1, 2
	default:
		return 0, 2
	}
}

// Project extracts the track of one body row from a sequence of flat
// states. Frames too short to hold the row are skipped, which happens when
// a satellite joins a run part way through.
func Project(states []dynamo.State, row int, plane Plane) []Point {
	a, b := plane.axes()
	off := row * body.Cols
	points := make([]Point, 0, len(states))
	for _, s := range states {
		if row < 0 || off+body.Cols > len(s) {
			continue
		}
		points = append(points, Point{X: s[off+a], Y: s[off+b]})
	}
	return points
}

// Rows reports how many body rows the widest state holds.
func Rows(states []dynamo.State) int {
	n := 0
	for _, s := range states {
		n = max(n, len(s)/body.Cols)
	}
	return n
}

// Palette colours tracks in row order.
var Palette = []string{"#ffcc00", "#00ccff", "#ff8844", "#88ff88", "#ff66cc", "#cccccc"}

// Track is one labelled line in a trajectory plot.
type Track struct {
	Label  string
	Points []Point
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#05050f"/>
<g fill="#e0f0ff">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func trackBounds(tracks []Track) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, tr := range tracks {
		for _, p := range tr.Points {
			b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
			b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
		}
	}
	// Equal aspect so circular orbits stay circular.
	span := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2
	return bounds{cx - span/2, cx + span/2, cy - span/2, cy + span/2}
}

// TrajectoriesToSVG draws every track on shared, square axes. Each track
// ends in a marker at its last point. Tracks with fewer than two points
// are skipped.
func TrajectoriesToSVG(tracks []Track, size int) (string, error) {
	drawn := make([]Track, 0, len(tracks))
	for _, tr := range tracks {
		if len(tr.Points) >= 2 {
			drawn = append(drawn, tr)
		}
	}
	if len(drawn) == 0 {
		return "", ErrNoTracks
	}

	b := trackBounds(drawn)
	fs := float64(size)
	toScreen := func(p Point) (float64, float64) {
		x := (p.X - b.minX) / (b.maxX - b.minX) * fs
		y := fs - (p.Y-b.minY)/(b.maxY-b.minY)*fs
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#05050f"/>
`, size, size, size, size))

	for i, tr := range drawn {
		color := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range tr.Points {
			x, y := toScreen(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := toScreen(tr.Points[len(tr.Points)-1])
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x, y, color))
		if tr.Label != "" {
			sb.WriteString(fmt.Sprintf("<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
				x+6, y-6, color, escape(tr.Label)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// RunToSVG projects every body row of a run and draws them together.
// names label the rows in order; missing names fall back to "row N".
func RunToSVG(states []dynamo.State, names []string, plane Plane, size int) (string, error) {
	n := Rows(states)
	tracks := make([]Track, n)
	for row := 0; row < n; row++ {
		label := fmt.Sprintf("row %d", row)
		if row < len(names) && names[row] != "" {
			label = names[row]
		}
		tracks[row] = Track{Label: label, Points: Project(states, row, plane)}
	}
	return TrajectoriesToSVG(tracks, size)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

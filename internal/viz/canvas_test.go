package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/astrogolf/internal/vector"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != rune(brailleBlank|0x1|0x80) {
		t.Errorf("cell = %U, want %U", c.Grid[0][0], rune(brailleBlank|0x1|0x80))
	}
	if !c.IsSet(0, 0) || !c.IsSet(1, 3) || c.IsSet(1, 0) {
		t.Error("IsSet disagrees with Set")
	}
	c.Unset(0, 0)
	if c.IsSet(0, 0) || !c.IsSet(1, 3) {
		t.Error("Unset cleared the wrong dot")
	}
	c.Clear()
	if c.IsSet(1, 3) {
		t.Error("Clear left a dot")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 4)
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Errorf("out of bounds writes changed the canvas: %q", c.String())
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(5, 1)
	c.DrawLine(0, 0, 9, 0)
	for x := 0; x < 10; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}
}

func TestViewportCentre(t *testing.T) {
	c := NewCanvas(20, 10)
	v := Viewport{CenterX: 3, CenterY: -2, Span: 4}
	px, py := v.ToPixel(c, 3, -2)
	if px != c.PixelWidth()/2 || py != c.PixelHeight()/2 {
		t.Errorf("centre maps to (%d, %d)", px, py)
	}
	// Up in world space is up on screen.
	_, pyUp := v.ToPixel(c, 3, -1)
	if pyUp >= py {
		t.Errorf("y axis not flipped: %d >= %d", pyUp, py)
	}
	// The span fills the canvas height.
	_, top := v.ToPixel(c, 3, 0)
	if top != 0 {
		t.Errorf("top edge at %d, want 0", top)
	}
}

func TestViewportZoomClamps(t *testing.T) {
	v := Viewport{Span: 1e-6}.Zoom(0.1)
	if v.Span != 1e-6 {
		t.Errorf("span = %g", v.Span)
	}
}

func TestCameraFlatten(t *testing.T) {
	cam := NewCamera()
	x, y, ok := cam.Flatten(vector.Vector{X: 1, Y: 5, Z: 2})
	if !ok || x != 1 || y != 2 {
		t.Errorf("flat view got (%g, %g, %v)", x, y, ok)
	}

	cam.RotateY(math.Pi / 2)
	x, y, _ = cam.Flatten(vector.Vector{X: 1})
	if math.Abs(x) > 1e-12 || math.Abs(y+1) > 1e-12 {
		t.Errorf("rotated view got (%g, %g)", x, y)
	}

	cam.Reset()
	cam.Perspective = true
	if _, _, ok := cam.Flatten(vector.Vector{Y: cam.Distance + 1}); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestThemeCycle(t *testing.T) {
	defer SetTheme(ThemeDeepSpace.Name)
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("cycled to %s, want %s", CurrentTheme.Name, start)
	}
	if GetTheme("nope").Name != ThemeDeepSpace.Name {
		t.Error("unknown theme did not fall back")
	}
}

func TestParseHex(t *testing.T) {
	r, g, b := parseHex("#ff8000")
	if r != 255 || g != 128 || b != 0 {
		t.Errorf("got %d %d %d", r, g, b)
	}
	if hexColor(300, -5, 16) != "#ff0010" {
		t.Errorf("got %s", hexColor(300, -5, 16))
	}
}

package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/vector"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 400
	tickRate        = time.Second / 30
)

// ErrNoPlayer is returned by kicks and launches in a scene without a
// controllable body.
var ErrNoPlayer = errors.New("viz: scene has no player body")

type TickMsg time.Time

// Builder creates a fresh model. The viewer calls it again on reset.
type Builder func() (models.Model, error)

// Scene describes what the viewer shows and how the player interacts.
type Scene struct {
	Name string
	// FrameDt is the simulated time advanced per tick at speed 1.
	FrameDt float64
	// TimeLimit stops the scene when reached. Zero means no limit.
	TimeLimit float64
	// Player is the row steered by kicks, or -1.
	Player int
	// Kick is the velocity change of one key press.
	Kick  float64
	Names []string
}

// Viewer plays a model in the terminal, drawing bodies and their trails on
// a braille canvas.
type Viewer struct {
	scene   Scene
	build   Builder
	model   models.Model
	canvas  *Canvas
	view    Viewport
	camera  *Camera
	trails  [][]vector.Vector
	energy  []float64
	values  []float64
	running bool
	done    bool
	speed   float64
	follow  bool
	help    bool
	status  string
	width   int
	height  int
}

// NewViewer builds the first model and fits the view around it.
func NewViewer(scene Scene, build Builder) (*Viewer, error) {
	if scene.FrameDt <= 0 {
		scene.FrameDt = 0.01
	}
	if scene.Kick == 0 {
		scene.Kick = 0.5
	}
	v := &Viewer{
		scene:  scene,
		build:  build,
		canvas: NewCanvas(width-30, height),
		camera: NewCamera(),
		speed:  1,
		width:  width,
		height: height,
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) reset() error {
	m, err := v.build()
	if err != nil {
		return err
	}
	v.model = m
	v.trails = nil
	v.energy = v.energy[:0]
	v.values = v.values[:0]
	v.running, v.done, v.status = true, false, ""
	v.view = fitView(m.Snapshot(), v.camera)
	v.record()
	return nil
}

// fitView centres on the origin and shows every body with some margin.
func fitView(state []float64, cam *Camera) Viewport {
	span := 0.0
	for _, p := range positions(state) {
		x, y, _ := cam.Flatten(p)
		span = math.Max(span, math.Max(math.Abs(x), math.Abs(y)))
	}
	if span == 0 {
		span = 1
	}
	return Viewport{Span: span * 2.4}
}

func positions(state []float64) []vector.Vector {
	if len(state) == 0 || len(state)%body.Cols != 0 {
		return nil
	}
	out := make([]vector.Vector, 0, len(state)/body.Cols)
	for off := 0; off+body.Cols <= len(state); off += body.Cols {
		out = append(out, vector.Vector{X: state[off], Y: state[off+1], Z: state[off+2]})
	}
	return out
}

func (v *Viewer) nmodel() *models.NModel {
	n, _ := v.model.(*models.NModel)
	return n
}

func (v *Viewer) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.canvas = NewCanvas(max(msg.Width-34, 20), max(msg.Height-4, 10))
	case tea.KeyMsg:
		if cmd := v.handleKey(msg.String()); cmd != nil {
			return v, cmd
		}
	case TickMsg:
		if v.running && !v.done {
			v.Step()
		}
		return v, tick()
	}
	return v, nil
}

func (v *Viewer) handleKey(key string) tea.Cmd {
	v.status = ""
	var err error
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case " ":
		v.running = !v.running
	case "r":
		err = v.reset()
	case "+", "=":
		v.view = v.view.Zoom(1 / 1.25)
	case "-", "_":
		v.view = v.view.Zoom(1.25)
	case ">", ".":
		v.speed = math.Min(v.speed*2, 64)
	case "<", ",":
		v.speed = math.Max(v.speed/2, 1.0/64)
	case "f":
		v.follow = !v.follow
	case "t":
		NextTheme()
	case "x":
		v.camera.RotateX(0.1)
	case "X":
		v.camera.RotateX(-0.1)
	case "y":
		v.camera.RotateY(0.1)
	case "Y":
		v.camera.RotateY(-0.1)
	case "z":
		v.camera.RotateZ(0.1)
	case "Z":
		v.camera.RotateZ(-0.1)
	case "0":
		v.camera.Reset()
	case "p":
		v.camera.Perspective = !v.camera.Perspective
	case "?":
		v.help = !v.help
	case "w", "up":
		err = v.Kick(vector.Vector{Z: v.scene.Kick})
	case "s", "down":
		err = v.Kick(vector.Vector{Z: -v.scene.Kick})
	case "a", "left":
		err = v.Kick(vector.Vector{X: -v.scene.Kick})
	case "d", "right":
		err = v.Kick(vector.Vector{X: v.scene.Kick})
	case "l":
		var row int
		if row, err = v.Launch(); err == nil {
			v.status = fmt.Sprintf("launched row %d", row)
		}
	}
	if err != nil {
		v.status = err.Error()
	}
	return nil
}

// Kick changes the player's velocity by dv.
func (v *Viewer) Kick(dv vector.Vector) error {
	n := v.nmodel()
	if n == nil || v.scene.Player < 0 {
		return ErrNoPlayer
	}
	return n.AddVelocity(v.scene.Player, dv)
}

// Launch fires a satellite from the player body.
func (v *Viewer) Launch() (int, error) {
	n := v.nmodel()
	if n == nil || v.scene.Player < 0 {
		return 0, ErrNoPlayer
	}
	return n.Launch(v.scene.Player, models.DefaultLaunchScale)
}

// Step advances the model by one frame and records its trails.
func (v *Viewer) Step() {
	dt := v.scene.FrameDt * v.speed
	if lim := v.scene.TimeLimit; lim > 0 {
		dt = math.Min(dt, lim-v.model.Time())
	}
	v.model.Advance(dt)
	v.record()
	if lim := v.scene.TimeLimit; lim > 0 && v.model.Time() >= lim {
		v.done = true
	}
	if !v.model.Snapshot().IsValid() {
		v.done, v.status = true, "simulation diverged"
	}
}

func (v *Viewer) record() {
	state := v.model.Snapshot()
	pos := positions(state)
	for len(v.trails) < len(pos) {
		v.trails = append(v.trails, make([]vector.Vector, 0, trailCapacity))
	}
	for i, p := range pos {
		v.trails[i] = appendCapped(v.trails[i], p, trailCapacity)
	}
	if pos == nil && len(state) > 0 {
		v.values = appendCapped(v.values, state[0], historyCapacity)
	}
	if n := v.nmodel(); n != nil {
		v.energy = appendCapped(v.energy, n.Physics().Energy(n.Bodies()), historyCapacity)
	}
}

func appendCapped[T any](s []T, x T, capacity int) []T {
	if len(s) >= capacity {
		s = append(s[:0], s[1:]...)
	}
	return append(s, x)
}

// Time is the model clock.
func (v *Viewer) Time() float64 { return v.model.Time() }

// Done reports whether the time limit was reached or the run diverged.
func (v *Viewer) Done() bool { return v.done }

func (v *Viewer) draw() {
	v.canvas.Clear()
	state := v.model.Snapshot()
	pos := positions(state)
	if pos == nil {
		v.drawSeries()
		return
	}

	view := v.view
	if v.follow && v.scene.Player >= 0 && v.scene.Player < len(pos) {
		view.CenterX, view.CenterY, _ = v.camera.Flatten(pos[v.scene.Player])
	}
	for i, trail := range v.trails {
		if i >= len(pos) {
			break
		}
		for _, p := range trail {
			if x, y, ok := v.camera.Flatten(p); ok {
				view.Plot(v.canvas, x, y)
			}
		}
	}
	for i, p := range pos {
		x, y, ok := v.camera.Flatten(p)
		if !ok {
			continue
		}
		px, py := view.ToPixel(v.canvas, x, y)
		r := 1
		if i == v.scene.Player {
			r = 2
		}
		v.canvas.Disc(px, py, r)
	}
}

// drawSeries plots scalar models, such as cooling, as a value over time.
func (v *Viewer) drawSeries() {
	if len(v.values) < 2 {
		return
	}
	lo, hi := v.values[0], v.values[0]
	for _, x := range v.values {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if hi == lo {
		hi = lo + 1
	}
	pw, ph := v.canvas.PixelWidth(), v.canvas.PixelHeight()
	prevX, prevY := -1, -1
	for i, x := range v.values {
		px := i * (pw - 1) / (historyCapacity - 1)
		py := int(float64(ph-1) * (hi - x) / (hi - lo))
		if prevX >= 0 {
			v.canvas.DrawLine(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

// View renders the TUI interface.
func (v *Viewer) View() string {
	v.draw()
	canvasView := lipgloss.NewStyle().Padding(1, 1).Render(v.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(v.scene.Name), CurrentTheme.Primary, CurrentTheme.Accent) + "\n\n")
	switch {
	case v.done:
		s.WriteString(StatusDone.Render("TIME UP") + "\n")
	case v.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n")
	}
	if v.scene.TimeLimit > 0 {
		s.WriteString(ProgressBar(v.model.Time()/v.scene.TimeLimit, 24) + "\n")
	}
	s.WriteString("\n")
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.3f", v.model.Time())) + "\n")
	s.WriteString(MetricLabel.Render("Speed") + MetricValue.Render(fmt.Sprintf("x%g", v.speed)) + "\n")
	s.WriteString(MetricLabel.Render("Span") + MetricValue.Render(fmt.Sprintf("%.3g", v.view.Span)) + "\n")
	if n := v.nmodel(); n != nil {
		s.WriteString(MetricLabel.Render("Bodies") + MetricValue.Render(fmt.Sprint(n.Len())) + "\n")
		if v.scene.Player >= 0 && v.scene.Player < n.Len() {
			if d, j, err := n.ClosestApproach(v.scene.Player); err == nil && j >= 0 {
				s.WriteString(MetricLabel.Render("Nearest") + MetricValue.Render(fmt.Sprintf("%.4f (%s)", d, v.rowName(j))) + "\n")
			}
		}
	}
	if len(v.values) > 0 {
		s.WriteString(MetricLabel.Render("Value") + MetricValue.Render(fmt.Sprintf("%.3f", v.values[len(v.values)-1])) + "\n")
	}
	if len(v.energy) > 1 {
		chart := asciigraph.Plot(v.energy, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("Energy"))
		s.WriteString("\n" + chart + "\n")
	}
	if v.status != "" {
		s.WriteString("\n" + StatusPaused.Render(v.status) + "\n")
	}
	s.WriteString("\n" + Separator(26) + "\n")
	s.WriteString(KeyHint.Render("SP pause  R reset  Q quit\n+/- zoom  </> speed  ? help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, Panel.Render(s.String()))
	if v.help {
		return Panel.Render(helpText) + "\n" + main
	}
	return main
}

func (v *Viewer) rowName(i int) string {
	if i < len(v.scene.Names) && v.scene.Names[i] != "" {
		return v.scene.Names[i]
	}
	return fmt.Sprintf("row %d", i)
}

const helpText = `Space      pause or resume
R          restart the scene
W/A/S/D    kick the player body
L          launch a satellite from the player
+ / -      zoom
< / >      slow down or speed up
F          follow the player
X/Y/Z      rotate the camera, 0 resets
P          toggle perspective
T          cycle themes
Q          quit`

// Run plays the viewer full screen until the user quits.
func Run(v *Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}

package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/astrogolf/internal/config"
)

// ViewerFactory turns a scenario into a ready viewer.
type ViewerFactory func(sc *config.Scenario) (*Viewer, error)

var kindInfo = map[string]string{
	config.ModelNBody:      "mutual gravity",
	config.ModelOrbit:      "central body",
	config.ModelTrajectory: "uniform gravity",
	config.ModelCooling:    "newton cooling",
}

type menuEntry struct {
	kind, name string
}

// Menu lists every preset and opens the chosen one in a Viewer. Esc in the
// viewer returns to the list.
type Menu struct {
	entries []menuEntry
	cursor  int
	factory ViewerFactory
	viewer  *Viewer
	err     error
}

func NewMenu(factory ViewerFactory) *Menu {
	m := &Menu{factory: factory}
	for _, kind := range config.Models() {
		for _, name := range config.ListPresets(kind) {
			m.entries = append(m.entries, menuEntry{kind, name})
		}
	}
	return m
}

func (m *Menu) Init() tea.Cmd { return nil }

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.viewer != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.viewer = nil
			return m, nil
		}
		_, cmd := m.viewer.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.open()
	}
	return m, nil
}

func (m *Menu) open() tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	e := m.entries[m.cursor]
	sc := config.GetPreset(e.kind, e.name)
	if sc == nil {
		m.err = fmt.Errorf("unknown preset: %s/%s", e.kind, e.name)
		return nil
	}
	v, err := m.factory(sc)
	if err != nil {
		m.err = err
		return nil
	}
	m.viewer, m.err = v, nil
	return v.Init()
}

func (m *Menu) View() string {
	if m.viewer != nil {
		return m.viewer.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("ASTROGOLF", CurrentTheme.Primary, CurrentTheme.Accent) + "\n")
	b.WriteString("    " + Subtle.Render("fixed-step gravity playground") + "\n")
	b.WriteString("    " + Separator(26) + "\n\n")
	for i, e := range m.entries {
		label := fmt.Sprintf("%-14s", e.name)
		desc := fmt.Sprintf("%-11s %s", e.kind, kindInfo[e.kind])
		if i == m.cursor {
			b.WriteString("    " + Selected.Render("▸ "+label) + "  " + Title.Render(desc) + "\n")
		} else {
			b.WriteString("    " + Subtle.Render("  "+label) + "  " + Subtle.Render(desc) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusDone.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter play  esc back  q quit") + "\n")
	return b.String()
}

// RunMenu shows the preset menu full screen.
func RunMenu(factory ViewerFactory) error {
	_, err := tea.NewProgram(NewMenu(factory), tea.WithAltScreen()).Run()
	return err
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stylebox/pkg/box"
	"github.com/matzehuels/stylebox/pkg/element"
)

// nudgeMode is what the arrow keys act on.
type nudgeMode int

const (
	modeMove nudgeMode = iota
	modeResize
	modeRotate
	modeBackground
)

var modeNames = [...]string{"move", "resize", "rotate", "background"}

func (m nudgeMode) String() string { return modeNames[m] }

// handleCycle is the order the c key steps through resize handles.
var handleCycle = []box.Corner{
	box.SouthEast, box.East, box.NorthEast, box.North,
	box.NorthWest, box.West, box.SouthWest, box.South,
}

var stepSizes = []float64{1, 5, 10, 50}

var (
	nudgeModeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	nudgeHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	nudgeErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// NudgeModel - Keyboard editor for one element
// =============================================================================

// NudgeModel is the bubbletea model behind `stylebox nudge`. Each key press
// is one gesture; every gesture is recorded for undo.
type NudgeModel struct {
	Element *element.Element
	History *element.History

	Mode   nudgeMode
	Handle int // index into handleCycle
	Step   int // index into stepSizes
	GridX  float64
	GridY  float64

	Dirty  bool
	Status string
	Err    error

	save func() error
}

// NewNudgeModel creates a model editing e. save writes the layout; it may be
// nil when saving is not possible.
func NewNudgeModel(e *element.Element, save func() error) NudgeModel {
	return NudgeModel{
		Element: e,
		History: &element.History{},
		save:    save,
	}
}

func (m NudgeModel) Init() tea.Cmd {
	return nil
}

func (m NudgeModel) step() float64 { return stepSizes[m.Step] }

func (m NudgeModel) handle() box.Corner { return handleCycle[m.Handle] }

func (m NudgeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Err = nil

	switch k := key.String(); k {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "m":
		m.Mode = modeMove
	case "s":
		m.Mode = modeResize
	case "r":
		m.Mode = modeRotate
	case "b":
		m.Mode = modeBackground
	case "c":
		m.Handle = (m.Handle + 1) % len(handleCycle)
	case "]":
		if m.Step < len(stepSizes)-1 {
			m.Step++
		}
	case "[":
		if m.Step > 0 {
			m.Step--
		}

	case "up", "k":
		m.arrow(0, -1)
	case "down", "j":
		m.arrow(0, 1)
	case "left", "h":
		m.arrow(-1, 0)
	case "right", "l":
		m.arrow(1, 0)

	case "+", "=":
		m.edit(m.Element.Raise)
	case "-":
		m.edit(m.Element.Lower)

	case "u":
		if m.History.Undo(m.Element) {
			m.Dirty = true
			m.Status = "undone"
		}
	case "ctrl+r", "U":
		if m.History.Redo(m.Element) {
			m.Dirty = true
			m.Status = "redone"
		}

	case "w":
		if m.save == nil {
			m.Status = "nothing to save to"
			break
		}
		if err := m.save(); err != nil {
			m.Err = err
			break
		}
		m.Dirty = false
		m.Status = "saved"
	}
	return m, nil
}

// arrow applies one arrow key press in the current mode.
func (m *NudgeModel) arrow(sx, sy float64) {
	d := m.step()
	g := element.Gesture{DX: sx * d, DY: sy * d, GridX: m.GridX, GridY: m.GridY}

	switch m.Mode {
	case modeMove:
		m.edit(func() { m.Element.Move(g) })
	case modeResize:
		corner := m.handle()
		m.edit(func() { m.Element.Resize(corner, g) })
	case modeRotate:
		// Up and right turn clockwise.
		delta := d * (sx - sy)
		m.edit(func() { m.Element.RotateBy(delta, 0) })
	case modeBackground:
		m.edit(func() { m.Element.MoveBackground(g) })
	}
}

// edit records the element for undo and then runs fn.
func (m *NudgeModel) edit(fn func()) {
	m.History.Record(m.Element)
	fn()
	m.Dirty = true
	m.Status = ""
}

func (m NudgeModel) View() string {
	var b strings.Builder
	h := m.Element.Headers()

	b.WriteString(StyleTitle.Render("#" + m.Element.ID))
	b.WriteString("  ")
	b.WriteString(nudgeModeStyle.Render(m.Mode.String()))
	if m.Mode == modeResize {
		b.WriteString(StyleDim.Render(" handle " + m.handle().String()))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  step %gpx", m.step())))
	if m.Dirty {
		b.WriteString(StyleWarning.Render("  *"))
	}
	b.WriteString("\n\n")

	for _, kv := range [][2]string{
		{"position", h.Position},
		{"size", h.Size},
		{"transform", h.Transform},
		{"background", h.Background},
		{"z-index", h.ZIndex},
	} {
		b.WriteString(styleKey.Render(kv[0]) + " " + StyleValue.Render(kv[1]) + "\n")
	}
	b.WriteString("\n")
	for _, d := range m.Element.Declarations() {
		b.WriteString("  " + StyleHighlight.Render(d.String()) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(nudgeErrStyle.Render(m.Err.Error()) + "\n")
	case m.Status != "":
		b.WriteString(StyleSuccess.Render(m.Status) + "\n")
	}
	b.WriteString(nudgeHelpStyle.Render("arrows/hjkl nudge  m/s/r/b mode  c handle  [ ] step  +/- layer  u undo  U redo  w save  q quit"))
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// nudgeCommand creates the nudge command.
func (c *CLI) nudgeCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "nudge [layout]",
		Short: "Edit one element interactively with the keyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			l, err := c.loadLayout(path)
			if err != nil {
				return err
			}
			e, err := l.Find(id)
			if err != nil {
				return err
			}

			m := NewNudgeModel(e, func() error {
				e.Normalize()
				return saveLayout(l, path)
			})
			m.GridX, m.GridY = c.Config.Grid.X, c.Config.Grid.Y

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if fm, ok := final.(NudgeModel); ok && fm.Dirty {
				printWarning("Unsaved changes to %s were discarded", e.ID)
			}
			loggerFromContext(cmd.Context()).Debug("editor closed", "id", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "element id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

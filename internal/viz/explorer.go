package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/san-kum/dalitz/internal/experiment"
	"github.com/san-kum/dalitz/internal/models"
)

const (
	defaultStep = 0.1
	chartWidth  = 60
	chartHeight = 8
)

// Explorer is the interactive parameter explorer. Projections are recomputed
// synchronously after every parameter change.
type Explorer struct {
	kind    string
	model   models.Model
	initial []float64
	points  int
	cursor  int
	step    float64
	theme   int
	st      styles
	log     zerolog.Logger

	res *experiment.Result
	err error

	width, height int
}

func NewExplorer(kind string, m models.Model, points int, log zerolog.Logger) *Explorer {
	e := &Explorer{
		kind:    kind,
		model:   m,
		initial: m.Pars(),
		points:  points,
		step:    defaultStep,
		st:      newStyles(Themes[0]),
		log:     log,
		width:   80,
		height:  24,
	}
	e.recompute()
	return e
}

func (e *Explorer) Cursor() int                { return e.cursor }
func (e *Explorer) Step() float64              { return e.step }
func (e *Explorer) Theme() Theme               { return Themes[e.theme] }
func (e *Explorer) Result() *experiment.Result { return e.res }
func (e *Explorer) Err() error                 { return e.err }

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := e.model.NPars()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "tab", "right", "l":
		if n > 0 {
			e.cursor = (e.cursor + 1) % n
		}
	case "shift+tab", "left", "h":
		if n > 0 {
			e.cursor = (e.cursor - 1 + n) % n
		}
	case "up", "+", "k":
		e.shift(e.step)
	case "down", "-", "j":
		e.shift(-e.step)
	case "]":
		e.step *= 2
	case "[":
		e.step /= 2
	case "r":
		e.reset()
	case "t":
		e.theme = (e.theme + 1) % len(Themes)
		e.st = newStyles(Themes[e.theme])
	}
	return e, nil
}

func (e *Explorer) shift(delta float64) {
	if e.model.NPars() == 0 {
		return
	}
	if err := e.model.SetPar(e.cursor, e.model.Par(e.cursor)+delta); err != nil {
		e.err = err
		return
	}
	e.recompute()
}

func (e *Explorer) reset() {
	for i, v := range e.initial {
		if err := e.model.SetPar(i, v); err != nil {
			e.err = fmt.Errorf("reset p%d: %w", i, err)
			e.log.Warn().Err(err).Str("kind", e.kind).Int("par", i).Msg("reset failed")
			return
		}
	}
	e.recompute()
}

func (e *Explorer) recompute() {
	exp := experiment.New(e.model, experiment.Config{Points: e.points}, e.log)
	e.res, e.err = exp.Run(context.Background())
	if e.err != nil {
		e.log.Warn().Err(e.err).Str("kind", e.kind).Msg("projection failed")
	}
}

func (e *Explorer) View() string {
	var s strings.Builder
	s.WriteString(e.st.header.Render(strings.ToUpper(e.kind)) + "\n\n")

	if e.err != nil {
		s.WriteString(e.st.errText.Render("error: "+e.err.Error()) + "\n\n")
	}
	if e.res != nil {
		s.WriteString(e.st.label.Render("integral") + e.st.value.Render(fmt.Sprintf("%.6g", e.res.Integral)) + "\n\n")
		s.WriteString(PlotProjection(e.res.ProjX, "x projection", chartWidth, chartHeight) + "\n\n")
		s.WriteString(PlotProjection(e.res.ProjY, "y projection", chartWidth, chartHeight) + "\n\n")
	}

	var pars strings.Builder
	for i, v := range e.model.Pars() {
		line := fmt.Sprintf("p%-3d %+.4f", i, v)
		if i == e.cursor {
			pars.WriteString(e.st.selected.Render("▸ "+line) + "\n")
		} else {
			pars.WriteString("  " + line + "\n")
		}
	}
	if e.model.NPars() == 0 {
		pars.WriteString("no parameters\n")
	}
	pars.WriteString(fmt.Sprintf("step %g  theme %s", e.step, Themes[e.theme].Name))
	s.WriteString(e.st.panel.Render(pars.String()) + "\n")

	s.WriteString(e.st.hint.Render("tab select • ↑/↓ adjust • [ ] step • r reset • t theme • q quit"))
	return s.String()
}

package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/phase"
)

const (
	panelWidth   = 54
	defaultCols  = 60
	defaultRows  = 20
	minCols      = 20
	minRows      = 8
	canvasLeft   = 2 // left padding
	canvasTop    = 2 // top padding plus title row
	grabX        = 6 // sub-pixels
	grabY        = 8
	nudgeSteps   = 100
	profileSteps = 40
)

// canvas layers, bottom to top
const (
	layerGuide = iota
	layerLower
	layerUpper
	layerTie
	layerPoint
)

// Options configures NewModel.
type Options struct {
	Title  string
	Theme  string
	Start  phase.Probe
	Logger *zap.Logger
}

// Model is the interactive diagram: the braille canvas on the left, the
// readout panel on the right. Pointer events drive a diagram.Dragger.
type Model struct {
	drag     *diagram.Dragger
	reg      *phase.Registry
	layers   *Layers
	theme    Theme
	title    string
	start    phase.Probe
	cols     int
	rows     int
	showHelp bool
	logger   *zap.Logger
}

func NewModel(ctx *diagram.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		reg:    phase.NewRegistry(),
		theme:  GetTheme(opts.Theme),
		title:  opts.Title,
		start:  opts.Start,
		logger: logger,
	}
	m.drag = diagram.NewDragger(ctx, opts.Start, logger)
	m.resize(defaultCols, defaultRows)
	return m
}

// Dragger exposes the interaction state.
func (m Model) Dragger() *diagram.Dragger { return m.drag }

func (m Model) Theme() Theme { return m.theme }

// resize rebuilds the canvas and maps the context onto its sub-pixels.
func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = max(cols, minCols), max(rows, minRows)
	m.layers = NewLayers(m.cols, m.rows, m.theme.layerStyles(false)...)
	w, h := m.layers.Layer(0).PixelSize()
	m.drag.SetContext(m.drag.Context().WithViewport(float64(w-1), float64(h-1)))
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-8, msg.Height-6)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// cellToPixel maps a terminal cell to the centre of its sub-pixel block.
func (m Model) cellToPixel(x, y int) (float64, float64) {
	return float64(x-canvasLeft)*2 + 0.5, float64(y-canvasTop)*4 + 1.5
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	px, py := m.cellToPixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onPoint(px, py) {
			return
		}
		m.drag.Start(px, py)
	case tea.MouseActionMotion:
		m.drag.Move(px, py)
	case tea.MouseActionRelease:
		if m.drag.State() == diagram.Dragging {
			m.drag.End()
		}
	}
}

// onPoint reports whether a press lands close enough to grab the point.
func (m Model) onPoint(px, py float64) bool {
	ppx, ppy := m.drag.Context().Pixel(m.drag.Feedback().Probe)
	return math.Abs(px-ppx) <= grabX && math.Abs(py-ppy) <= grabY
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lo, hi := m.drag.Context().Domain()
	dx, dy := 1.0/nudgeSteps, (hi-lo)/nudgeSteps

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = NextTheme(m.theme)
	case "p":
		m.cyclePolicy()
	case "l":
		m.cycleLocator()
	case "r":
		m.drag.Start(m.drag.Context().Pixel(m.start))
		m.drag.MoveTo(m.start)
		m.drag.End()
	case "left":
		m.drag.Nudge(-dx, 0)
	case "right":
		m.drag.Nudge(dx, 0)
	case "up":
		m.drag.Nudge(0, dy)
	case "down":
		m.drag.Nudge(0, -dy)
	}
	return m, nil
}

func (m *Model) cyclePolicy() {
	ctx := m.drag.Context()
	name := next(m.reg.ListPolicies(), phase.PolicyName(ctx.Policy()))
	p, _ := m.reg.GetPolicy(name)
	m.drag.SetContext(ctx.WithPolicy(p))
	m.logger.Info("policy changed", zap.String("policy", name))
}

func (m *Model) cycleLocator() {
	ctx := m.drag.Context()
	name := next(m.reg.ListLocators(), phase.LocatorName(ctx.Locator()))
	l, _ := m.reg.GetLocator(name)
	m.drag.SetContext(ctx.WithLocator(l))
	m.logger.Info("locator changed", zap.String("locator", name))
}

func next(names []string, cur string) string {
	for i, n := range names {
		if n == cur {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func round(v float64) int { return int(math.Round(v)) }

// draw renders curves and the current scene into the canvas layers.
func (m *Model) draw() {
	m.layers.Clear()
	ctx := m.drag.Context()
	curve := ctx.Curve()
	if curve.Len() == 0 {
		return
	}

	w, _ := m.layers.Layer(0).PixelSize()
	sides := []struct {
		side  phase.Side
		layer int
	}{{phase.Lower, layerLower}, {phase.Upper, layerUpper}}

	for _, s := range sides {
		c := m.layers.Layer(s.layer)
		var prevX, prevY int
		for px := 0; px < w; px++ {
			smp := curve.Nearest(ctx.XScale().Invert(float64(px)))
			fx, fy := ctx.Pixel(phase.Probe{X: smp.Composition, Y: smp.Value(s.side)})
			x, y := round(fx), round(fy)
			if px > 0 {
				c.DrawLine(prevX, prevY, x, y)
			}
			prevX, prevY = x, y
		}
	}

	scene := m.drag.Feedback().Scene
	for _, seg := range scene.Segments() {
		x0, y0 := ctx.Pixel(seg.From)
		x1, y1 := ctx.Pixel(seg.To)
		if seg.Name == diagram.SegmentGuide {
			m.layers.Layer(layerGuide).DrawDashed(round(x0), round(y0), round(x1), round(y1), 2, 2)
			continue
		}
		m.layers.Layer(layerTie).DrawLine(round(x0), round(y0), round(x1), round(y1))
	}

	px, py := ctx.Pixel(scene.Point)
	r := 1
	if scene.Active {
		r = 2
	}
	m.layers.Layer(layerPoint).Dot(round(px), round(py), r)
	m.layers.SetStyles(m.theme.layerStyles(scene.Active)...)
}

// profile evaluates the isotherm through the current point.
func (m Model) profile() ([]float64, []float64) {
	ctx := m.drag.Context()
	y := m.drag.Feedback().Probe.Y
	readings, err := phase.Sweep(context.Background(), ctx.Evaluator(), phase.Isotherm(y, profileSteps))
	if err != nil {
		return nil, nil
	}
	vap := make([]float64, len(readings))
	liq := make([]float64, len(readings))
	for i, r := range readings {
		vap[i], liq[i] = r.Fractions.Vapour, r.Fractions.Liquid
	}
	return vap, liq
}

func (m Model) View() string {
	m.draw()

	ctx := m.drag.Context()
	axis := ctx.Axis()
	lo, hi := ctx.Domain()
	title := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render(strings.ToUpper(m.title))
	xAxis := Subtle.Render(fmt.Sprintf("0%s1", strings.Repeat(" ", max(m.cols-2, 0))))
	canvasView := canvasStyle.Render(title + "\n" + m.layers.String() + xAxis)

	fb := m.drag.Feedback()
	eq := fb.Equilibrium
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("PHASE DIAGRAM") + "\n")
	if m.drag.State() == diagram.Dragging {
		s.WriteString(StatusDragging.Render("DRAGGING") + "\n\n")
	} else {
		s.WriteString(StatusIdle.Render("IDLE") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Policy", phase.PolicyName(ctx.Policy()))
	row("Locator", phase.LocatorName(ctx.Locator()))
	row("Axis", diagram.FormatValue(axis, lo)+" .. "+diagram.FormatValue(axis, hi))
	row("Point", fmt.Sprintf("%.3f, %s", fb.Probe.X, diagram.FormatValue(axis, fb.Probe.Y)))
	row("Liquid at", fmt.Sprintf("%.3f (%s)", eq.LowerComposition, diagram.FormatValue(axis, eq.LowerValue)))
	row("Vapour at", fmt.Sprintf("%.3f (%s)", eq.UpperComposition, diagram.FormatValue(axis, eq.UpperValue)))
	row("Region", phase.Classify(fb.Fractions).String())
	s.WriteString("\n")
	s.WriteString(MetricLabel.Render("Vapour") + FractionBar(fb.Fractions.Vapour, 20, m.theme.Upper) + fmt.Sprintf(" %.3f\n", fb.Fractions.Vapour))
	s.WriteString(MetricLabel.Render("Liquid") + FractionBar(fb.Fractions.Liquid, 20, m.theme.Lower) + fmt.Sprintf(" %.3f\n", fb.Fractions.Liquid))
	s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Text).Render(fb.CoordinatesText()) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Text).Render(fb.FractionsText()) + "\n\n")

	if vap, liq := m.profile(); len(vap) > 1 {
		chart := asciigraph.PlotMany([][]float64{vap, liq},
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Precision(1),
			asciigraph.Caption("isotherm: vapour / liquid"),
		)
		s.WriteString(chart + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	s.WriteString(KeyHint.Render("drag:Move ←↑↓→:Nudge R:Reset\nP:Policy L:Locator T:Theme ?:Help Q:Quit"))
	panel := panelStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		help := GlassPanel.Render(strings.Join([]string{
			"Drag the point with the left mouse button.",
			"",
			"←↑↓→        nudge the point",
			"r           back to the start point",
			"p           cycle lever-arm policy",
			"l           cycle equilibrium locator",
			"t           cycle themes (" + strings.Join(ThemeNames(), ", ") + ")",
			"?           toggle this help",
			"q           quit",
		}, "\n"))
		return mainView + "\n" + help
	}
	return mainView
}

// Run starts the full-screen program with mouse tracking.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/phase"
)

// Margins around the plot area, in SVG user units.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// SVGOptions controls DiagramToSVG output.
type SVGOptions struct {
	Width, Height int
	Margins       Margins
	Background    string
	LowerColor    string
	UpperColor    string
	TieColor      string
	PointColor    string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     600,
		Margins:    Margins{Top: 20, Right: 20, Bottom: 30, Left: 50},
		Background: "#ffffff",
		LowerColor: "#1f77b4",
		UpperColor: "#d62728",
		TieColor:   "#444444",
		PointColor: "#ff7f0e",
	}
}

// DiagramToSVG renders both curves, the probe, its tie-lines, the guide and
// the readout text as a standalone SVG document.
func DiagramToSVG(ctx *diagram.Context, fb diagram.Feedback, opts SVGOptions) string {
	if ctx == nil || ctx.Curve().Len() == 0 {
		return ""
	}

	m := opts.Margins
	innerW := float64(opts.Width) - m.Left - m.Right
	innerH := float64(opts.Height) - m.Top - m.Bottom
	view := ctx.WithViewport(innerW, innerH)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g transform="translate(%.0f,%.0f)">
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background, m.Left, m.Top))

	// axes
	sb.WriteString(fmt.Sprintf(`<line class="x-axis" x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000"/>
<line class="y-axis" x1="0" y1="0" x2="0" y2="%.1f" stroke="#000"/>
`, innerH, innerW, innerH, innerH))
	writeTicks(&sb, view, innerH)

	stride := ctx.Curve().Len() / int(innerW)
	if stride < 1 {
		stride = 1
	}
	writeCurve(&sb, view, phase.Lower, "lower-curve", opts.LowerColor, stride)
	writeCurve(&sb, view, phase.Upper, "upper-curve", opts.UpperColor, stride)

	for _, seg := range fb.Scene.Segments() {
		x1, y1 := view.Pixel(seg.From)
		x2, y2 := view.Pixel(seg.To)
		dash := ""
		if seg.Name == diagram.SegmentGuide {
			dash = ` stroke-dasharray="4,3"`
		}
		sb.WriteString(fmt.Sprintf(`<line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"%s/>
`, seg.Name, x1, y1, x2, y2, opts.TieColor, dash))
	}

	px, py := view.Pixel(fb.Scene.Point)
	radius := 5.0
	if fb.Scene.Active {
		radius = 7
	}
	sb.WriteString(fmt.Sprintf(`<circle class="point" cx="%.1f" cy="%.1f" r="%.0f" fill="%s"/>
`, px, py, radius, opts.PointColor))

	sb.WriteString(fmt.Sprintf(`<text class="coordinates" x="10" y="15" font-size="12">%s</text>
<text class="fractions" x="10" y="30" font-size="12">%s</text>
`, escape(fb.CoordinatesText()), escape(fb.FractionsText())))

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func writeCurve(sb *strings.Builder, view *diagram.Context, side phase.Side, class, color string, stride int) {
	c := view.Curve()
	sb.WriteString(fmt.Sprintf(`<path class="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, class, color))
	last := c.Len() - 1
	for i := 0; i <= last; i += stride {
		writePoint(sb, view, c.At(i), side, i == 0)
	}
	if last%stride != 0 {
		writePoint(sb, view, c.At(last), side, false)
	}
	sb.WriteString(`"/>
`)
}

func writePoint(sb *strings.Builder, view *diagram.Context, s phase.Sample, side phase.Side, first bool) {
	x, y := view.Pixel(phase.Probe{X: s.Composition, Y: s.Value(side)})
	if first {
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	} else {
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
	}
}

func writeTicks(sb *strings.Builder, view *diagram.Context, innerH float64) {
	axis := view.Axis()
	lo, hi := view.Domain()
	for i := 0; i <= 10; i++ {
		f := float64(i) / 10
		x, _ := view.Pixel(phase.Probe{X: f, Y: lo})
		sb.WriteString(fmt.Sprintf(`<text class="x-tick" x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%.1f</text>
`, x, innerH+15, f))

		v := lo + f*(hi-lo)
		_, y := view.Pixel(phase.Probe{X: 0, Y: v})
		sb.WriteString(fmt.Sprintf(`<text class="y-tick" x="-6" y="%.1f" font-size="10" text-anchor="end">%s</text>
`, y+3, escape(diagram.FormatValue(axis, v))))
	}
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

package export

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/phase"
)

var ErrNoCurve = errors.New("export: diagram has no samples")

// sideXYs adapts one side of a curve to plotter.XYer without copying.
type sideXYs struct {
	curve  phase.Curve
	side   phase.Side
	stride int
}

func (s sideXYs) Len() int {
	return (s.curve.Len() + s.stride - 1) / s.stride
}

func (s sideXYs) XY(i int) (float64, float64) {
	smp := s.curve.At(i * s.stride)
	return smp.Composition, smp.Value(s.side)
}

// segmentXYs is a two-point polyline.
type segmentXYs diagram.Segment

func (s segmentXYs) Len() int { return 2 }

func (s segmentXYs) XY(i int) (float64, float64) {
	if i == 0 {
		return s.From.X, s.From.Y
	}
	return s.To.X, s.To.Y
}

// PNGOptions sizes the image in points.
type PNGOptions struct {
	Width, Height vg.Length
	Title         string
	Format        string
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Width: 8 * vg.Inch, Height: 6 * vg.Inch, Title: "Binary phase diagram", Format: "png"}
}

// DiagramPlot builds a gonum plot of the curves and the probe scene.
func DiagramPlot(ctx *diagram.Context, fb diagram.Feedback, title string) (*plot.Plot, error) {
	if ctx == nil || ctx.Curve().Len() == 0 {
		return nil, ErrNoCurve
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Composition"
	p.Y.Label.Text = "Value"
	if axis := ctx.Axis(); axis.Unit != "" {
		p.Y.Label.Text = "Temperature (" + axis.Unit + ")"
	}
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = ctx.Domain()
	p.Add(plotter.NewGrid())

	stride := ctx.Curve().Len() / 500
	if stride < 1 {
		stride = 1
	}

	lower, err := plotter.NewLine(sideXYs{curve: ctx.Curve(), side: phase.Lower, stride: stride})
	if err != nil {
		return nil, err
	}
	lower.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	lower.Width = vg.Points(1.5)

	upper, err := plotter.NewLine(sideXYs{curve: ctx.Curve(), side: phase.Upper, stride: stride})
	if err != nil {
		return nil, err
	}
	upper.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	upper.Width = vg.Points(1.5)

	p.Add(lower, upper)
	p.Legend.Add("lower (liquid)", lower)
	p.Legend.Add("upper (vapour)", upper)
	p.Legend.Top = true

	for _, seg := range fb.Scene.Segments() {
		l, err := plotter.NewLine(segmentXYs(seg))
		if err != nil {
			return nil, err
		}
		l.Color = color.Gray{Y: 0x44}
		if seg.Name == diagram.SegmentGuide {
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(l)
	}

	pt, err := plotter.NewScatter(plotter.XYs{{X: fb.Scene.Point.X, Y: fb.Scene.Point.Y}})
	if err != nil {
		return nil, err
	}
	pt.GlyphStyle.Shape = draw.CircleGlyph{}
	pt.GlyphStyle.Radius = vg.Points(4)
	pt.GlyphStyle.Color = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	p.Add(pt)

	return p, nil
}

// DiagramToPNG writes the diagram image to w. Format may be any gonum/plot
// writer format (png, svg, pdf); it defaults to png.
func DiagramToPNG(w io.Writer, ctx *diagram.Context, fb diagram.Feedback, opts PNGOptions) error {
	p, err := DiagramPlot(ctx, fb, opts.Title)
	if err != nil {
		return err
	}
	format := opts.Format
	if format == "" {
		format = "png"
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

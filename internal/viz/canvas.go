package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.drawLine(x0, y0, x1, y1, 0, 0)
}

// DrawDashed draws a line that alternates on pixels and off pixels.
func (c *Canvas) DrawDashed(x0, y0, x1, y1, on, off int) {
	c.drawLine(x0, y0, x1, y1, on, off)
}

func (c *Canvas) drawLine(x0, y0, x1, y1, on, off int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for n := 0; ; n++ {
		if on <= 0 || n%(on+off) < on {
			c.Set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Dot fills a (2r+1) square around (x, y).
func (c *Canvas) Dot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Layers stacks same-sized canvases. Dots from every layer are merged per
// cell and the cell takes the style of the topmost layer that touches it.
type Layers struct {
	Width, Height int
	canvases      []*Canvas
	styles        []lipgloss.Style
}

func NewLayers(w, h int, styles ...lipgloss.Style) *Layers {
	l := &Layers{Width: w, Height: h, styles: styles}
	for range styles {
		l.canvases = append(l.canvases, NewCanvas(w, h))
	}
	return l
}

// Layer returns canvas i; layer 0 is drawn at the bottom.
func (l *Layers) Layer(i int) *Canvas { return l.canvases[i] }

func (l *Layers) SetStyles(styles ...lipgloss.Style) {
	copy(l.styles, styles)
}

func (l *Layers) Clear() {
	for _, c := range l.canvases {
		c.Clear()
	}
}

func (l *Layers) String() string {
	var b strings.Builder
	for row := 0; row < l.Height; row++ {
		var run strings.Builder
		runStyle := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(l.styles[runStyle].Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < l.Width; col++ {
			r := rune(brailleBlank)
			top := -1
			for i, c := range l.canvases {
				if cell := c.Grid[row][col]; cell != brailleBlank {
					r |= cell
					top = i
				}
			}
			if top != runStyle {
				flush()
				runStyle = top
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

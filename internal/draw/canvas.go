package draw

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/backdrop/internal/palette"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// 4x4 ordered dither, turns fractional alpha into dot density.
var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

const emptyCell = 0x2800

// Canvas is a Braille sub-pixel surface. Each cell holds 2x4 dots; every dot
// covers Scale x Scale logical units. Translucent paint is dithered, with
// Gain boosting the faint alphas decorative layers use.
type Canvas struct {
	Width, Height int
	Scale         float64
	Gain          float64
	Grid          [][]rune
	Colors        [][]palette.Color
	weight        [][]float64
}

func NewCanvas(w, h int, scale float64) *Canvas {
	c := &Canvas{Scale: scale, Gain: 6}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]palette.Color, h)
	c.weight = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]palette.Color, w)
		c.weight[i] = make([]float64, w)
	}
	c.Clear()
}

// Size implements Surface.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width*2) * c.Scale, float64(c.Height*4) * c.Scale
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < emptyCell {
		c.Grid[row][col] = emptyCell
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = emptyCell
			c.Colors[i][j] = palette.Color{}
			c.weight[i][j] = 0
		}
	}
}

// plot dithers one dot with color col.
func (c *Canvas) plot(x, y int, col palette.Color) {
	if x < 0 || y < 0 || col.A <= 0 {
		return
	}
	row, cell := y/4, x/2
	if cell >= c.Width || row >= c.Height {
		return
	}
	threshold := (bayer[y%4][x%4] + 0.5) / 16
	if col.A*c.Gain < threshold {
		return
	}
	c.Grid[row][cell] |= rune(pixelMap[y%4][x%2])
	if col.A >= c.weight[row][cell] {
		c.weight[row][cell] = col.A
		c.Colors[row][cell] = col
	}
}

// dotBounds converts a logical bounding box to a clipped dot range.
func (c *Canvas) dotBounds(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(minX / c.Scale))
	y0 = int(math.Floor(minY / c.Scale))
	x1 = int(math.Ceil(maxX / c.Scale))
	y1 = int(math.Ceil(maxY / c.Scale))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.Width*2-1 {
		x1 = c.Width*2 - 1
	}
	if y1 > c.Height*4-1 {
		y1 = c.Height*4 - 1
	}
	return
}

func (c *Canvas) center(dx, dy int) (float64, float64) {
	return (float64(dx) + 0.5) * c.Scale, (float64(dy) + 0.5) * c.Scale
}

func (c *Canvas) FillCircle(cx, cy, r float64, p Paint) {
	if r <= 0 {
		return
	}
	// Sub-dot circles still mark their center dot.
	if r < c.Scale/2 {
		c.plot(int(math.Floor(cx/c.Scale)), int(math.Floor(cy/c.Scale)), p.ColorAt(cx, cy))
		return
	}
	x0, y0, x1, y1 := c.dotBounds(cx-r, cy-r, cx+r, cy+r)
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			px, py := c.center(dx, dy)
			if math.Hypot(px-cx, py-cy) <= r {
				c.plot(dx, dy, p.ColorAt(px, py))
			}
		}
	}
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, p Paint) {
	half := math.Max(width/2, c.Scale/2)
	x0, y0, x1, y1 := c.dotBounds(cx-r-half, cy-r-half, cx+r+half, cy+r+half)
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			px, py := c.center(dx, dy)
			if math.Abs(math.Hypot(px-cx, py-cy)-r) <= half {
				c.plot(dx, dy, p.ColorAt(px, py))
			}
		}
	}
}

func (c *Canvas) FillPolygon(pts []Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	minX, minY, maxX, maxY := bounds(pts)
	x0, y0, x1, y1 := c.dotBounds(minX, minY, maxX, maxY)
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			px, py := c.center(dx, dy)
			if contains(pts, px, py) {
				c.plot(dx, dy, p.ColorAt(px, py))
			}
		}
	}
}

func (c *Canvas) StrokePolygon(pts []Point, width float64, p Paint) {
	if len(pts) < 2 {
		return
	}
	c.StrokePolyline(pts, width, p)
	a, b := pts[len(pts)-1], pts[0]
	c.Line(a.X, a.Y, b.X, b.Y, width, p)
}

func (c *Canvas) StrokePolyline(pts []Point, width float64, p Paint) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

// Line rasterizes with Bresenham in dot space; width is ignored below one dot.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, p Paint) {
	ax, ay := int(math.Floor(x0/c.Scale)), int(math.Floor(y0/c.Scale))
	bx, by := int(math.Floor(x1/c.Scale)), int(math.Floor(y1/c.Scale))
	c.DrawLineFunc(ax, ay, bx, by, func(x, y int) {
		px, py := c.center(x, y)
		c.plot(x, y, p.ColorAt(px, py))
	})
}

// DrawLine draws a solid line of dots using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.DrawLineFunc(x0, y0, x1, y1, c.Set)
}

// DrawLineFunc walks the Bresenham line calling set per dot.
func (c *Canvas) DrawLineFunc(x0, y0, x1, y1 int, set func(x, y int)) {
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

	// Off-canvas segments can be arbitrarily long; cap the walk.
	limit := 4 * (c.Width*2 + c.Height*4)
	for i := 0; i <= limit; i++ {
		set(x0, y0)
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

// Overlay copies every set dot of top onto c, taking top's cell colors.
func (c *Canvas) Overlay(top *Canvas) {
	for row := 0; row < c.Height && row < top.Height; row++ {
		for col := 0; col < c.Width && col < top.Width; col++ {
			if top.Grid[row][col] == emptyCell {
				continue
			}
			c.Grid[row][col] |= top.Grid[row][col]
			c.Colors[row][col] = top.Colors[row][col]
			c.weight[row][col] = top.weight[row][col]
		}
	}
}

// Lit counts set dots, used by tests and the stats panel.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := int(r - emptyCell)
			for bits != 0 {
				n += bits & 1
				bits >>= 1
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with per-cell foreground colors. A cell's color
// is its strongest paint blended over background by its boosted alpha; runs
// of equal color share one style.
func (c *Canvas) Render(background palette.Color) string {
	var b strings.Builder
	hex := make([]string, c.Width)
	for row := range c.Grid {
		for col := range hex {
			hex[col] = c.cellHex(row, col, background)
		}
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && hex[col] == hex[start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if hex[start] == "" {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex[start])).Render(run))
			}
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) cellHex(row, col int, background palette.Color) string {
	if c.Grid[row][col] == emptyCell {
		return ""
	}
	k := palette.Clamp01(c.weight[row][col] * c.Gain)
	return background.Lerp(c.Colors[row][col], k).Hex()
}

func bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// contains is the even-odd point-in-polygon test.
func contains(pts []Point, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Package render draws battle maps and event logs as terminal text.
package render

import "strings"

// Color is the foreground color of a canvas cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Cell is one character of the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

// Canvas is a 2D character buffer. Map drawing writes runes and colors
// into it; String and Styled turn it into text.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a blank canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height}
	c.cells = make([][]Cell, height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, width)
	}
	c.Fill(' ')
	return c
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Fill sets every cell to r with the default color.
func (c *Canvas) Fill(r rune) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: r}
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune, color Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Color: color}
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipped to the canvas.
func (c *Canvas) DrawText(x, y int, text string, color Color) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r, color)
		i++
	}
}

// String returns the canvas without colors. Trailing spaces are trimmed.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(c.Row(y))
	}
	return sb.String()
}

// Row returns the specified row without colors, trailing spaces trimmed.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	runes := make([]rune, c.width)
	for x, cell := range c.cells[y] {
		runes[x] = cell.Rune
	}
	return strings.TrimRight(string(runes), " ")
}

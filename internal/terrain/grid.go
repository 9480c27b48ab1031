package terrain

import (
	"fmt"

	"github.com/vovakirdan/hex-tactics/internal/hex"
)

// Grid is the battle map as a rectangular grid of terrain tags.
// Cells are stored in row-major order: index = row*W + col.
// A Grid is loaded once per stage and read-only during simulation.
type Grid struct {
	W     int    // Number of columns
	H     int    // Number of rows
	Cells []Type // Flat array of terrain tags, length W*H
}

// NewGrid creates a grid filled with the given terrain.
func NewGrid(w, h int, fill Type) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Type, w*h),
	}
	for i := range g.Cells {
		g.Cells[i] = fill
	}
	return g
}

// index converts an offset to a flat array index.
func (g *Grid) index(o hex.Offset) int {
	return o.Row*g.W + o.Col
}

// InBounds returns true if the offset is within the grid boundaries.
func (g *Grid) InBounds(o hex.Offset) bool {
	return o.Col >= 0 && o.Col < g.W && o.Row >= 0 && o.Row < g.H
}

// Contains returns true if the cube coordinate lies on the grid.
func (g *Grid) Contains(c hex.Coord) bool {
	return g.InBounds(c.ToOffset())
}

// At returns the terrain at the given offset.
// Returns false if out of bounds.
func (g *Grid) At(o hex.Offset) (Type, bool) {
	if !g.InBounds(o) {
		return "", false
	}
	return g.Cells[g.index(o)], true
}

// AtCoord returns the terrain at the given cube coordinate.
func (g *Grid) AtCoord(c hex.Coord) (Type, bool) {
	return g.At(c.ToOffset())
}

// Set sets the terrain at the given offset. Out-of-bounds writes are ignored.
func (g *Grid) Set(o hex.Offset, t Type) {
	if g.InBounds(o) {
		g.Cells[g.index(o)] = t
	}
}

// Neighbors returns the in-bounds neighbors of a coordinate.
func (g *Grid) Neighbors(c hex.Coord) []hex.Coord {
	result := make([]hex.Coord, 0, 6)
	for _, n := range c.Neighbors() {
		if g.Contains(n) {
			result = append(result, n)
		}
	}
	return result
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.W, g.H)
}

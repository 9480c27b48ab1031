// Package hex provides cube-coordinate hex geometry for the battle map.
//
// Coordinates are stored as cube triples (x, y, z) with x + y + z = 0.
// The rectangular terrain grid is addressed with Offset (column, row) in an
// "odd-r" vertical layout: odd rows are shoved half a cell to the right.
package hex

import (
	"fmt"

	"github.com/vovakirdan/hex-tactics/internal/core"
)

// Coord is a position on the hex grid in cube coordinates.
// Coord is an immutable value type; equality is component-wise.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// New creates a coordinate from two cube axes, deriving z = -x - y.
func New(x, y int) Coord {
	return Coord{X: x, Y: y, Z: -x - y}
}

// Cube creates a coordinate from all three axes.
// Panics if x + y + z != 0: such a value can only come from a programming error.
func Cube(x, y, z int) Coord {
	if x+y+z != 0 {
		panic(fmt.Sprintf("hex: invalid cube coordinate (%d,%d,%d)", x, y, z))
	}
	return Coord{X: x, Y: y, Z: z}
}

// Valid reports whether the cube invariant holds.
func (c Coord) Valid() bool {
	return c.X+c.Y+c.Z == 0
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Directions defines the six neighbor offsets in cube coordinates,
// starting east and turning counter-clockwise.
var Directions = [6]Coord{
	{X: 1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 1},
}

// Neighbors returns the six adjacent coordinates.
// Callers working on a bounded map must filter out-of-range results.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range Directions {
		result[i] = c.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates:
// the max of the three absolute axis differences.
func Distance(a, b Coord) int {
	return core.Max(core.Abs(a.X-b.X), core.Max(core.Abs(a.Y-b.Y), core.Abs(a.Z-b.Z)))
}

// Offset is a rectangular grid address: Col increases to the right,
// Row increases downward.
type Offset struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// O is a convenience constructor for Offset.
func O(col, row int) Offset {
	return Offset{Col: col, Row: row}
}

// String returns a string representation of the offset.
func (o Offset) String() string {
	return fmt.Sprintf("[%d,%d]", o.Col, o.Row)
}

// Neighbor offsets for the odd-r layout. The pattern alternates with the
// parity of the row.
var (
	evenRowNeighbors = [6]Offset{{1, 0}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}}
	oddRowNeighbors  = [6]Offset{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {0, 1}, {1, 1}}
)

// Neighbors returns the six adjacent grid addresses.
// The order matches Coord.Neighbors after conversion.
func (o Offset) Neighbors() [6]Offset {
	table := evenRowNeighbors
	if o.Row&1 == 1 {
		table = oddRowNeighbors
	}
	var result [6]Offset
	for i, d := range table {
		result[i] = Offset{Col: o.Col + d.Col, Row: o.Row + d.Row}
	}
	return result
}

// ToCube converts a grid address to cube coordinates.
func (o Offset) ToCube() Coord {
	x := o.Col - (o.Row-(o.Row&1))/2
	z := o.Row
	return Coord{X: x, Y: -x - z, Z: z}
}

// ToOffset converts cube coordinates to a grid address.
func (c Coord) ToOffset() Offset {
	return Offset{Col: c.X + (c.Z-(c.Z&1))/2, Row: c.Z}
}

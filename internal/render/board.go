package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

type glyph struct {
	r     rune
	color Color
}

var terrainGlyphs = map[terrain.Type]glyph{
	terrain.Plain:     {'.', ColorGreen},
	terrain.Forest:    {'f', ColorGreen},
	terrain.Mountain:  {'^', ColorWhite},
	terrain.River:     {'~', ColorBlue},
	terrain.Sea:       {'=', ColorBlue},
	terrain.Road:      {'#', ColorYellow},
	terrain.Swamp:     {',', ColorCyan},
	terrain.Ruins:     {'r', ColorGray},
	terrain.Wasteland: {':', ColorOrange},
	terrain.Cliff:     {'X', ColorGray},
}

var factionColors = map[unit.Faction]Color{
	unit.Player: ColorBrightGreen,
	unit.Ally:   ColorBrightCyan,
	unit.Enemy:  ColorBrightRed,
}

// MarkRune is drawn on marked cells that hold no unit.
const MarkRune = '*'

// Board draws a grid in odd-r layout: every hex takes two columns and odd
// rows are shifted right by one. Living units are drawn by the first letter
// of their ID (upper case for the player side, lower case for enemies),
// several units on one cell as '+'. Marked empty cells show MarkRune.
func Board(g *terrain.Grid, units []unit.Unit, marks hex.Set) *Canvas {
	c := NewCanvas(g.W*2+1, g.H)

	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			o := hex.O(col, row)
			t, _ := g.At(o)
			gl, ok := terrainGlyphs[t]
			if !ok {
				gl = glyph{'?', ColorDefault}
			}
			if marks.Has(o.ToCube()) {
				gl = glyph{MarkRune, ColorYellow}
			}
			x, y := cellPos(o)
			c.Set(x, y, gl.r, gl.color)
		}
	}

	occupied := make(map[hex.Coord]int)
	for _, u := range units {
		if !u.Alive() || !g.Contains(u.Pos) {
			continue
		}
		occupied[u.Pos]++
		x, y := cellPos(u.Pos.ToOffset())
		if occupied[u.Pos] > 1 {
			c.Set(x, y, '+', ColorMagenta)
			continue
		}
		c.Set(x, y, unitRune(u), factionColors[u.Faction])
	}
	return c
}

func cellPos(o hex.Offset) (int, int) {
	return o.Col*2 + (o.Row & 1), o.Row
}

func unitRune(u unit.Unit) rune {
	r := '?'
	for _, first := range u.ID {
		r = first
		break
	}
	if u.Faction.Side() == unit.SideHostile {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

// Legend lists the terrain glyphs in declaration order.
func Legend() string {
	parts := make([]string, 0, len(terrain.Types)+1)
	for _, t := range terrain.Types {
		parts = append(parts, fmt.Sprintf("%c %s", terrainGlyphs[t].r, t))
	}
	parts = append(parts, fmt.Sprintf("%c reachable", MarkRune))
	return strings.Join(parts, "  ")
}

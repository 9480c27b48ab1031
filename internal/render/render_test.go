package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

func TestCanvasSetGet(t *testing.T) {
	c := NewCanvas(10, 10)

	c.Set(5, 5, 'X', ColorRed)
	if got := c.Get(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("Get(5, 5) = %+v, expected red 'X'", got)
	}

	// Out of bounds should be silent
	c.Set(-1, 0, 'A', ColorDefault)
	c.Set(100, 0, 'A', ColorDefault)
	c.Set(0, -1, 'A', ColorDefault)
	c.Set(0, 100, 'A', ColorDefault)

	if c.Get(-1, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if c.Get(100, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestCanvasDrawText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.DrawText(1, 0, "héllo!!", ColorDefault)

	if got := c.Row(0); got != " héllo" {
		t.Errorf("Row(0) = %q, expected %q", got, " héllo")
	}
	if got := c.String(); got != " héllo\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestBoardLayout(t *testing.T) {
	g := terrain.NewGrid(3, 2, terrain.Plain)
	g.Set(hex.O(2, 0), terrain.Sea)
	g.Set(hex.O(0, 1), terrain.Mountain)

	c := Board(g, nil, nil)
	want := []string{
		". . =",
		" ^ . .",
	}
	for y, line := range want {
		if got := c.Row(y); got != line {
			t.Errorf("row %d = %q, expected %q", y, got, line)
		}
	}
}

func TestBoardUnitsAndMarks(t *testing.T) {
	g := terrain.NewGrid(3, 2, terrain.Plain)
	units := []unit.Unit{
		{ID: "knight", Faction: unit.Player, HP: 10, Pos: hex.O(0, 0).ToCube()},
		{ID: "wolf", Faction: unit.Enemy, HP: 10, Pos: hex.O(2, 1).ToCube()},
		{ID: "ghost", Faction: unit.Enemy, HP: 0, Pos: hex.O(1, 0).ToCube()},
		{ID: "mage", Faction: unit.Ally, HP: 5, Pos: hex.O(1, 1).ToCube()},
		{ID: "frog", Faction: unit.Ally, HP: 5, Pos: hex.O(1, 1).ToCube()},
	}
	marks := hex.NewSet(hex.O(1, 0).ToCube(), hex.O(0, 0).ToCube())

	c := Board(g, units, marks)
	if got := c.Row(0); got != "K * ." {
		t.Errorf("row 0 = %q", got)
	}
	if got := c.Row(1); got != " . + w" {
		t.Errorf("row 1 = %q", got)
	}
	if got := c.Get(0, 0).Color; got != ColorBrightGreen {
		t.Errorf("player color = %v", got)
	}
	if got := c.Get(5, 1).Color; got != ColorBrightRed {
		t.Errorf("enemy color = %v", got)
	}
}

func TestStyledKeepsText(t *testing.T) {
	g := terrain.NewGrid(2, 1, terrain.Road)
	styled := Styled(Board(g, nil, nil))
	if !strings.Contains(styled, "#") {
		t.Errorf("Styled output lost terrain glyphs: %q", styled)
	}
}

func TestEventFormatting(t *testing.T) {
	u := &unit.Unit{ID: "knight", HP: 30, Energy: 20}
	u.Current.MaxHP = 100

	text := Event(event.New(event.Action, u, "attacks wolf for %d", 25), 0)
	if !strings.Contains(text, "knight: attacks wolf for 25") {
		t.Errorf("missing description: %q", text)
	}
	if !strings.Contains(text, "(hp 30/100, en 20)") {
		t.Errorf("missing hp suffix: %q", text)
	}

	short := Event(event.New(event.Effect, nil, "a very long battle-wide announcement"), 12)
	if !strings.Contains(short, "…") {
		t.Errorf("expected truncation: %q", short)
	}
	if strings.Contains(short, "announcement") {
		t.Errorf("text not truncated: %q", short)
	}
}

func TestLegendListsTerrain(t *testing.T) {
	legend := Legend()
	for _, tt := range terrain.Types {
		if !strings.Contains(legend, string(tt)) {
			t.Errorf("legend misses %s", tt)
		}
	}
}

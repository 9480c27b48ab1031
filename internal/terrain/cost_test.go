package terrain

import (
	"testing"

	"github.com/vovakirdan/hex-tactics/internal/hex"
)

func TestDefaultCostsCoverEveryPair(t *testing.T) {
	table := NewCostTable(nil)
	for _, terrain := range Types {
		if !table.Registered(terrain) {
			t.Errorf("terrain %q has no default provider", terrain)
			continue
		}
		for _, m := range MoveTypes {
			cost := table.Cost(terrain, m)
			if cost <= 0 {
				t.Errorf("Cost(%s, %s) = %d, expected positive", terrain, m, cost)
			}
		}
	}
}

func TestDefaultCosts(t *testing.T) {
	table := NewCostTable(nil)

	tests := []struct {
		terrain  Type
		move     MoveType
		expected int
	}{
		{Plain, Foot, 1},
		{Forest, Foot, 2},
		{Mountain, Ooze, Impassable},
		{Sea, Foot, Impassable},
		{Sea, Ooze, 2},
		{Cliff, Float, 3},
		{Cliff, Foot, Impassable},
		{River, Ooze, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.terrain)+"/"+tc.move.String(), func(t *testing.T) {
			if got := table.Cost(tc.terrain, tc.move); got != tc.expected {
				t.Errorf("Cost(%s, %s) = %d, expected %d", tc.terrain, tc.move, got, tc.expected)
			}
		})
	}
}

func TestUnregisteredTerrainIsImpassable(t *testing.T) {
	table := NewCostTable(nil)
	if got := table.Cost("lava", Foot); got != Impassable {
		t.Errorf("Cost(lava, foot) = %d, expected %d", got, Impassable)
	}
	// Second lookup takes the same path without panicking on the warned map.
	if got := table.Cost("lava", Flying); got != Impassable {
		t.Errorf("Cost(lava, flying) = %d, expected %d", got, Impassable)
	}
}

func TestRegisterProvider(t *testing.T) {
	table := NewCostTable(nil)
	table.Register("lava", CostFunc(func(m MoveType) int {
		if m == Flying {
			return 1
		}
		return Impassable
	}))

	if got := table.Cost("lava", Flying); got != 1 {
		t.Errorf("Cost(lava, flying) = %d, expected 1", got)
	}
	if got := table.Cost("lava", Foot); got != Impassable {
		t.Errorf("Cost(lava, foot) = %d, expected %d", got, Impassable)
	}
}

func TestOverride(t *testing.T) {
	table := NewCostTable(nil)
	table.Override(Forest, Foot, 4)
	if got := table.Cost(Forest, Foot); got != 4 {
		t.Errorf("Cost(forest, foot) = %d, expected 4", got)
	}
	// Other tables are unaffected by the override.
	if got := NewCostTable(nil).Cost(Forest, Foot); got != 2 {
		t.Errorf("fresh table Cost(forest, foot) = %d, expected 2", got)
	}

	table.Override("bog", Ooze, 1)
	if got := table.Cost("bog", Ooze); got != 1 {
		t.Errorf("Cost(bog, ooze) = %d, expected 1", got)
	}
	if got := table.Cost("bog", Foot); got != Impassable {
		t.Errorf("Cost(bog, foot) = %d, expected %d", got, Impassable)
	}
}

func TestParseMoveType(t *testing.T) {
	for _, m := range MoveTypes {
		parsed, ok := ParseMoveType(m.String())
		if !ok || parsed != m {
			t.Errorf("ParseMoveType(%q) = %v, %v", m.String(), parsed, ok)
		}
	}
	if _, ok := ParseMoveType("teleport"); ok {
		t.Error("ParseMoveType(teleport) should fail")
	}
	if Flying.CostLookup() != Float {
		t.Error("flying units should use float costs")
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid(4, 3, Plain)
	g.Set(hex.O(2, 1), Forest)
	g.Set(hex.O(9, 9), Sea) // ignored

	if tt, ok := g.At(hex.O(2, 1)); !ok || tt != Forest {
		t.Errorf("At(2,1) = %q, %v; expected forest", tt, ok)
	}
	if _, ok := g.At(hex.O(4, 0)); ok {
		t.Error("At(4,0) should be out of bounds")
	}
	if !g.Contains(hex.O(3, 2).ToCube()) {
		t.Error("Contains should accept the bottom-right cell")
	}

	corner := hex.O(0, 0).ToCube()
	if n := len(g.Neighbors(corner)); n != 2 {
		t.Errorf("corner has %d in-bounds neighbors, expected 2", n)
	}
}

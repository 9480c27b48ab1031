package zoc

import (
	"testing"

	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

type exemptAll map[string]bool

func (e exemptAll) IgnoresZOC(u *unit.Unit) bool { return e[u.ID] }

func TestAdjacentAffects(t *testing.T) {
	rule := Adjacent{Exemptions: exemptAll{"skirmisher": true}}

	tests := []struct {
		name     string
		u        *unit.Unit
		expected bool
	}{
		{"foot", &unit.Unit{ID: "a", MoveType: terrain.Foot}, true},
		{"float", &unit.Unit{ID: "b", MoveType: terrain.Float}, true},
		{"flying", &unit.Unit{ID: "c", MoveType: terrain.Flying}, false},
		{"exempt", &unit.Unit{ID: "skirmisher", MoveType: terrain.Foot}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.AffectsUnit(tc.u); got != tc.expected {
				t.Errorf("AffectsUnit() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEnemyZone(t *testing.T) {
	rules := RuleSet{Adjacent{}}
	mover := &unit.Unit{ID: "m", Faction: unit.Player, HP: 10, Pos: hex.New(0, 0)}
	enemy := &unit.Unit{ID: "e", Faction: unit.Enemy, HP: 10, Pos: hex.New(4, -4)}
	flyer := &unit.Unit{ID: "f", Faction: unit.Enemy, HP: 10, Pos: hex.New(-4, 4), MoveType: terrain.Flying}
	dead := &unit.Unit{ID: "d", Faction: unit.Enemy, HP: 0, Pos: hex.New(0, 4)}
	ally := &unit.Unit{ID: "a", Faction: unit.Ally, HP: 10, Pos: hex.New(4, 0)}

	zone := rules.EnemyZone(mover, []*unit.Unit{mover, enemy, flyer, dead, ally})
	if zone.Len() != 6 {
		t.Fatalf("zone has %d cells, expected 6 (only the living ground enemy)", zone.Len())
	}
	for _, n := range enemy.Pos.Neighbors() {
		if !zone.Has(n) {
			t.Errorf("zone missing %v", n)
		}
	}
	if zone.Has(enemy.Pos) {
		t.Error("a unit's own cell is not part of its zone")
	}

	flying := &unit.Unit{ID: "x", Faction: unit.Player, HP: 10, MoveType: terrain.Flying}
	if z := rules.EnemyZone(flying, []*unit.Unit{enemy}); z.Len() != 0 {
		t.Errorf("flying units should see no zone, got %d cells", z.Len())
	}
}

func TestRuleSetAny(t *testing.T) {
	rs := RuleSet{Adjacent{Exemptions: exemptAll{"u": true}}, Adjacent{}}
	if !rs.AffectsUnit(&unit.Unit{ID: "u"}) {
		t.Error("a unit affected by any rule is affected by the set")
	}
	if (RuleSet{}).AffectsUnit(&unit.Unit{ID: "u"}) {
		t.Error("an empty rule set affects nobody")
	}
}

// Package scenario loads battle definitions (map, roster, blessings) from
// YAML. It is the data boundary: everything past it assumes well-formed input.
package scenario

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// CostOverride changes one terrain/movement-type cost for a scenario.
type CostOverride struct {
	Terrain terrain.Type
	Move    terrain.MoveType
	Cost    int
}

// Scenario is a parsed battle definition. It is a template: Roster returns
// fresh units for every battle.
type Scenario struct {
	ID        string
	Name      string
	Grid      *terrain.Grid
	Costs     []CostOverride
	Units     unit.Roster
	Blessings []combat.Blessing
	FilePath  string // Empty for built-in scenarios
}

// Roster returns a deep copy of the starting units.
func (s Scenario) Roster() unit.Roster {
	return s.Units.Clone()
}

// CostTable returns the default cost table with the scenario overrides applied.
func (s Scenario) CostTable(logger *log.Logger) *terrain.CostTable {
	t := terrain.NewCostTable(logger)
	for _, c := range s.Costs {
		t.Override(c.Terrain, c.Move, c.Cost)
	}
	return t
}

// Package movement computes the cells a unit can reach this turn.
//
// The search is a breadth-first relaxation over remaining movement budget:
// a cell may be revisited whenever a path arrives with more budget left than
// any earlier path did.
package movement

import (
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
	"github.com/vovakirdan/hex-tactics/internal/zoc"
)

// CostAdjuster lets characteristics and buffs change terrain costs.
// The effects registry implements it.
type CostAdjuster interface {
	AdjustCost(u *unit.Unit, t terrain.Type, cost int) int
}

// Calculator answers reachability queries against live battle state.
// It never mutates units.
type Calculator struct {
	grid   *terrain.Grid
	costs  *terrain.CostTable
	adjust CostAdjuster
	rules  zoc.RuleSet
}

// NewCalculator creates a calculator. adjust may be nil.
func NewCalculator(grid *terrain.Grid, costs *terrain.CostTable, adjust CostAdjuster, rules zoc.RuleSet) *Calculator {
	return &Calculator{
		grid:   grid,
		costs:  costs,
		adjust: adjust,
		rules:  rules,
	}
}

// EnterCost returns what the unit pays to enter a cell.
// Out-of-bounds cells are impassable.
func (c *Calculator) EnterCost(u *unit.Unit, cell hex.Coord) int {
	t, ok := c.grid.AtCoord(cell)
	if !ok {
		return terrain.Impassable
	}
	cost := c.costs.Cost(t, u.MoveType.CostLookup())
	if c.adjust != nil {
		cost = c.adjust.AdjustCost(u, t, cost)
	}
	return cost
}

// node is a search frontier entry.
type node struct {
	pos       hex.Coord
	remaining int
}

// search holds the result of one reachability search.
type search struct {
	best    map[hex.Coord]int       // Highest remaining budget seen per cell
	parent  map[hex.Coord]hex.Coord // Predecessor on the best path
	friends map[hex.Coord][]*unit.Unit
}

// run performs the search.
//
// Rules per step:
//  1. The cell must be on the map and not impassable for the unit.
//  2. Cells holding a living hostile unit cannot be entered.
//  3. The cost is subtracted from the remaining budget; negative budgets stop.
//  4. For ZOC-affected units, stepping from one enemy-controlled cell into
//     another forces the remaining budget to zero. The start cell counts as
//     departed from, but starting inside a zone never freezes the unit.
func (c *Calculator) run(u *unit.Unit, all []*unit.Unit) search {
	hostiles := hex.NewSet()
	friends := make(map[hex.Coord][]*unit.Unit)
	for _, other := range all {
		if other == u || other.ID == u.ID || !other.Alive() {
			continue
		}
		if other.Faction.HostileTo(u.Faction) {
			hostiles.Add(other.Pos)
		} else {
			friends[other.Pos] = append(friends[other.Pos], other)
		}
	}

	affected := c.rules.AffectsUnit(u)
	var zone hex.Set
	if affected {
		zone = c.rules.EnemyZone(u, all)
	}

	s := search{
		best:    map[hex.Coord]int{u.Pos: u.Current.Movement},
		parent:  make(map[hex.Coord]hex.Coord),
		friends: friends,
	}

	queue := []node{{pos: u.Pos, remaining: u.Current.Movement}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Stale entry: a better path to this cell was found after queueing.
		if cur.remaining < s.best[cur.pos] {
			continue
		}

		for _, next := range c.grid.Neighbors(cur.pos) {
			if hostiles.Has(next) {
				continue
			}
			cost := c.EnterCost(u, next)
			if cost >= terrain.Impassable {
				continue
			}
			remaining := cur.remaining - cost
			if remaining < 0 {
				continue
			}
			if affected && zone.Has(cur.pos) && zone.Has(next) {
				remaining = 0
			}
			if prev, seen := s.best[next]; seen && prev >= remaining {
				continue
			}
			s.best[next] = remaining
			s.parent[next] = cur.pos
			queue = append(queue, node{pos: next, remaining: remaining})
		}
	}

	return s
}

// canStop reports whether the unit may end its move on a cell.
// A friendly cell may be shared with exactly one unit of a different
// movement type; otherwise it can only be passed through.
func (s search) canStop(u *unit.Unit, cell hex.Coord) bool {
	if cell == u.Pos {
		return true
	}
	occupants := s.friends[cell]
	switch len(occupants) {
	case 0:
		return true
	case 1:
		return occupants[0].MoveType != u.MoveType
	default:
		return false
	}
}

// Reachable returns every cell the unit can end its move on this turn,
// including its current cell. Budget is the unit's current movement stat.
func (c *Calculator) Reachable(u *unit.Unit, all []*unit.Unit) hex.Set {
	s := c.run(u, all)
	result := hex.NewSet()
	for cell := range s.best {
		if s.canStop(u, cell) {
			result.Add(cell)
		}
	}
	return result
}

// Remaining returns the budget left after the best path to each reachable cell.
func (c *Calculator) Remaining(u *unit.Unit, all []*unit.Unit) map[hex.Coord]int {
	s := c.run(u, all)
	result := make(map[hex.Coord]int, len(s.best))
	for cell, rem := range s.best {
		if s.canStop(u, cell) {
			result[cell] = rem
		}
	}
	return result
}

// Path returns one best path from the unit's position to dest, inclusive
// of both ends. Returns false if dest is not reachable.
func (c *Calculator) Path(u *unit.Unit, all []*unit.Unit, dest hex.Coord) ([]hex.Coord, bool) {
	s := c.run(u, all)
	if _, ok := s.best[dest]; !ok || !s.canStop(u, dest) {
		return nil, false
	}

	path := []hex.Coord{dest}
	for cur := dest; cur != u.Pos; {
		cur = s.parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

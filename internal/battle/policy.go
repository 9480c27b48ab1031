package battle

import (
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/turn"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// NearestHostile is a minimal targeting policy for simulations: the closest
// living hostile unit, ties broken by ID.
var NearestHostile turn.Policy = turn.PolicyFunc(func(actor unit.Unit, units []unit.Unit) (string, bool) {
	best := ""
	bestDist := 0
	for _, u := range units {
		if !u.Alive() || !u.Faction.HostileTo(actor.Faction) {
			continue
		}
		d := hex.Distance(actor.Pos, u.Pos)
		if best == "" || d < bestDist || (d == bestDist && u.ID < best) {
			best, bestDist = u.ID, d
		}
	}
	return best, best != ""
})

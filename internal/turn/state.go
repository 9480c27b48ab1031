// Package turn runs the initiative queue and the day/night phase cycle
// of a battle.
package turn

import (
	"fmt"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Cycle is the time of day.
type Cycle int

const (
	Day Cycle = iota
	Night
)

func (c Cycle) String() string {
	if c == Night {
		return "night"
	}
	return "day"
}

// State is the manager-level turn state.
type State struct {
	Turn   int // Increments on every night-to-day flip
	Cycle  Cycle
	Phase  unit.Faction // Current faction phase; limits who may act under phase gating
	Active string       // ID of the unit currently acting, empty between turns
	Paused bool
}

func (s State) String() string {
	return fmt.Sprintf("turn %d %s, %s phase", s.Turn, s.Cycle, s.Phase)
}

// Outcome is the result of a battle.
type Outcome int

const (
	Undecided Outcome = iota
	Victory           // Only player-side units remain
	Defeat            // Only enemy units remain
	Draw              // Nobody remains
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// Decided reports whether the battle is over.
func (o Outcome) Decided() bool {
	return o != Undecided
}

// Snapshot is an immutable copy of the battle state.
type Snapshot struct {
	State   State
	Outcome Outcome
	Units   []unit.Unit
	Pending map[string]combat.Action
}

// Unit returns the unit snapshot with the given ID.
func (s Snapshot) Unit(id string) (unit.Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return unit.Unit{}, false
}

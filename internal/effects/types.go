// Package effects implements characteristics and buffs: the layered stat
// modifier pipeline and phase-event dispatch (day/night, turn boundaries).
package effects

import (
	"strings"

	"github.com/vovakirdan/hex-tactics/internal/core"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Phase is a point in the battle timeline that characteristics and buffs
// can react to.
type Phase uint8

const (
	DayStart Phase = iota
	DayEnd
	NightStart
	NightEnd
	TurnStart
	TurnEnd
)

// Phases lists every phase.
var Phases = []Phase{DayStart, DayEnd, NightStart, NightEnd, TurnStart, TurnEnd}

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case DayStart:
		return "day-start"
	case DayEnd:
		return "day-end"
	case NightStart:
		return "night-start"
	case NightEnd:
		return "night-end"
	case TurnStart:
		return "turn-start"
	case TurnEnd:
		return "turn-end"
	default:
		return "unknown"
	}
}

// ParsePhase converts a tag to a Phase.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range Phases {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, true
		}
	}
	return DayStart, false
}

// Stat selects one field of unit.Stats.
type Stat uint8

const (
	Movement Stat = iota
	Attack
	Defense
	MaxHP
)

func (st Stat) field(s *unit.Stats) *int {
	switch st {
	case Movement:
		return &s.Movement
	case Attack:
		return &s.Attack
	case Defense:
		return &s.Defense
	case MaxHP:
		return &s.MaxHP
	default:
		return nil
	}
}

// Modifier transforms derived stats in place.
type Modifier func(s *unit.Stats)

// AddStat returns a modifier adding n to a stat.
func AddStat(st Stat, n int) Modifier {
	return func(s *unit.Stats) {
		if f := st.field(s); f != nil {
			*f += n
		}
	}
}

// SetStat returns a modifier overwriting a stat.
func SetStat(st Stat, n int) Modifier {
	return func(s *unit.Stats) {
		if f := st.field(s); f != nil {
			*f = n
		}
	}
}

// ScaleStat returns a modifier multiplying a stat, rounding down.
func ScaleStat(st Stat, factor float64) Modifier {
	return func(s *unit.Stats) {
		if f := st.field(s); f != nil {
			*f = core.FloorMul(*f, factor)
		}
	}
}

// Handler reacts to a phase event.
type Handler func(ctx *Context)

// Hooks holds the optional phase handlers of a characteristic or buff.
type Hooks struct {
	OnDayStart   Handler
	OnDayEnd     Handler
	OnNightStart Handler
	OnNightEnd   Handler
	OnTurnStart  Handler
	OnTurnEnd    Handler
}

// For returns the handler for a phase, or nil.
func (h Hooks) For(p Phase) Handler {
	switch p {
	case DayStart:
		return h.OnDayStart
	case DayEnd:
		return h.OnDayEnd
	case NightStart:
		return h.OnNightStart
	case NightEnd:
		return h.OnNightEnd
	case TurnStart:
		return h.OnTurnStart
	case TurnEnd:
		return h.OnTurnEnd
	default:
		return nil
	}
}

// Capability is the shape shared by characteristics and buffs.
type Capability struct {
	Modifiers []Modifier
	Hooks

	// TerrainCost adjusts the cost of entering a terrain, if set.
	TerrainCost func(t terrain.Type, cost int) int

	// IgnoreZOC exempts the carrier from enemy zones of control.
	IgnoreZOC bool
}

// Characteristic is an innate capability fixed at unit creation.
type Characteristic struct {
	ID   string
	Name string
	Capability
}

// Buff is a capability added and removed at runtime.
type Buff struct {
	ID   string
	Name string
	Capability

	// OnRemove fires when the buff expires or is removed through the registry.
	OnRemove Handler
}

package combat

import "github.com/vovakirdan/hex-tactics/internal/unit"

// Trigger is the condition that fires a blessing.
type Trigger int

const (
	OnFatalDamage Trigger = iota
	AfterUltimate
	OnTurnStart
	OnTurnEnd
)

// Triggers lists every trigger in declaration order.
var Triggers = []Trigger{OnFatalDamage, AfterUltimate, OnTurnStart, OnTurnEnd}

func (t Trigger) String() string {
	switch t {
	case OnFatalDamage:
		return "on-fatal-damage"
	case AfterUltimate:
		return "after-ultimate"
	case OnTurnStart:
		return "on-turn-start"
	case OnTurnEnd:
		return "on-turn-end"
	default:
		return "unknown"
	}
}

// ParseTrigger converts a tag into a Trigger. "on-knockout" is accepted
// as an alias of on-fatal-damage.
func ParseTrigger(s string) (Trigger, bool) {
	if s == "on-knockout" {
		return OnFatalDamage, true
	}
	for _, t := range Triggers {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Usage limits how often a blessing can fire within one battle.
type Usage int

const (
	OncePerBattle     Usage = iota // Once for each unit of the faction
	OncePerBattleTeam              // Once for the whole faction
	Always
)

// Usages lists every usage policy in declaration order.
var Usages = []Usage{OncePerBattle, OncePerBattleTeam, Always}

func (u Usage) String() string {
	switch u {
	case OncePerBattle:
		return "once-per-battle"
	case OncePerBattleTeam:
		return "once-per-battle-team"
	case Always:
		return "always"
	default:
		return "unknown"
	}
}

// ParseUsage converts a tag into a Usage.
func ParseUsage(s string) (Usage, bool) {
	for _, u := range Usages {
		if u.String() == s {
			return u, true
		}
	}
	return 0, false
}

// EffectKind is a blessing effect type.
type EffectKind int

const (
	ConsumeResource EffectKind = iota
	Heal
	RestoreEnergy
	Resurrect
)

// EffectKinds lists every effect kind in declaration order.
var EffectKinds = []EffectKind{ConsumeResource, Heal, RestoreEnergy, Resurrect}

func (k EffectKind) String() string {
	switch k {
	case ConsumeResource:
		return "consume_resource"
	case Heal:
		return "heal"
	case RestoreEnergy:
		return "restore_energy"
	case Resurrect:
		return "resurrect"
	default:
		return "unknown"
	}
}

// ParseEffectKind converts a tag into an EffectKind.
func ParseEffectKind(s string) (EffectKind, bool) {
	for _, k := range EffectKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Resource is what consume_resource drains.
type Resource int

const (
	HP Resource = iota
	Energy
)

func (r Resource) String() string {
	if r == Energy {
		return "energy"
	}
	return "hp"
}

// ParseResource converts a tag into a Resource.
func ParseResource(s string) (Resource, bool) {
	switch s {
	case "hp":
		return HP, true
	case "energy":
		return Energy, true
	default:
		return HP, false
	}
}

// Basis is the value heal and restore_energy scale from.
type Basis int

const (
	BasisFlat Basis = iota // Effect.Amount
	BasisCurrentHP
	BasisMaxHP
	BasisCurrentEnergy
	BasisMaxEnergy
	BasisConsumedHP     // HP drained earlier in the same chain
	BasisConsumedEnergy // Energy drained earlier in the same chain
)

// Bases lists every basis in declaration order.
var Bases = []Basis{BasisFlat, BasisCurrentHP, BasisMaxHP, BasisCurrentEnergy, BasisMaxEnergy, BasisConsumedHP, BasisConsumedEnergy}

func (b Basis) String() string {
	switch b {
	case BasisFlat:
		return "flat"
	case BasisCurrentHP:
		return "current_hp"
	case BasisMaxHP:
		return "max_hp"
	case BasisCurrentEnergy:
		return "current_energy"
	case BasisMaxEnergy:
		return "max_energy"
	case BasisConsumedHP:
		return "consumed_hp"
	case BasisConsumedEnergy:
		return "consumed_energy"
	default:
		return "unknown"
	}
}

// ParseBasis converts a tag into a Basis.
func ParseBasis(s string) (Basis, bool) {
	for _, b := range Bases {
		if b.String() == s {
			return b, true
		}
	}
	return BasisFlat, false
}

// Effect is one step of a blessing's effect chain.
//
// Amount and Percent are alternatives: a positive Percent (in percentage
// points) takes precedence over Amount for consume_resource and resurrect.
// Heal and restore_energy compute floor(basis value * Multiplier).
type Effect struct {
	Kind       EffectKind
	Resource   Resource
	Amount     int
	Percent    float64
	Basis      Basis
	Multiplier float64
}

// Blessing is a conditional, limited-use effect bundle bound to one faction.
type Blessing struct {
	ID        string
	Name      string
	Faction   unit.Faction
	Trigger   Trigger
	Usage     Usage
	MinEnergy int // Zero uses the configured threshold for on-fatal-damage
	Effects   []Effect
}

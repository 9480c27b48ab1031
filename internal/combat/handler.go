package combat

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/core"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Handler fires blessings and tracks their usage for one battle.
type Handler struct {
	blessings []Blessing
	used      map[string]bool
	threshold int
	maxEnergy int
	logger    *log.Logger
}

// NewHandler creates a handler for the given blessings. Blessings are
// checked in slice order.
func NewHandler(blessings []Blessing, rules config.Rules, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		blessings: append([]Blessing(nil), blessings...),
		used:      make(map[string]bool),
		threshold: rules.Blessing.ResurrectThreshold,
		maxEnergy: rules.Combat.MaxEnergy,
		logger:    logger,
	}
}

// Blessings returns the configured blessings.
func (h *Handler) Blessings() []Blessing {
	return append([]Blessing(nil), h.blessings...)
}

// usageKey identifies what a single use consumes.
// Always blessings have no key and are never consumed.
func usageKey(b Blessing, u *unit.Unit) (string, bool) {
	switch b.Usage {
	case OncePerBattle:
		return b.ID + "/unit/" + u.ID, true
	case OncePerBattleTeam:
		return b.ID + "/faction/" + b.Faction.String(), true
	default:
		return "", false
	}
}

// Consumed reports whether the blessing can no longer fire for u.
func (h *Handler) Consumed(id string, u *unit.Unit) bool {
	for _, b := range h.blessings {
		if b.ID != id {
			continue
		}
		key, limited := usageKey(b, u)
		return limited && h.used[key]
	}
	return false
}

// Reset forgets all usage, starting a new battle.
func (h *Handler) Reset() {
	clear(h.used)
}

func (h *Handler) minEnergy(b Blessing) int {
	if b.MinEnergy == 0 && b.Trigger == OnFatalDamage {
		return h.threshold
	}
	return b.MinEnergy
}

func (h *Handler) eligible(b Blessing, trigger Trigger, u *unit.Unit) bool {
	if b.Trigger != trigger || b.Faction != u.Faction {
		return false
	}
	if key, limited := usageKey(b, u); limited && h.used[key] {
		return false
	}
	return u.Energy >= h.minEnergy(b)
}

// Fire runs every eligible blessing for the trigger on u, in order,
// and returns how many fired. For on-fatal-damage the search stops as soon
// as the unit is back on its feet.
func (h *Handler) Fire(trigger Trigger, u *unit.Unit, log *event.Log) int {
	fired := 0
	for _, b := range h.blessings {
		if trigger == OnFatalDamage && u.Alive() {
			break
		}
		if !h.eligible(b, trigger, u) {
			continue
		}
		if key, limited := usageKey(b, u); limited {
			h.used[key] = true
		}
		fired++
		log.Add(event.Effect, u, "blessing %s fires (%s)", b.ID, trigger)
		h.apply(b, u, log)
	}
	return fired
}

// Knockout settles a unit whose hitpoints just reached zero: on-fatal-damage
// blessings get their chance, and if the unit is still down a death event
// with the given description is logged. Returns true if the unit stays down.
// Living units are left alone.
func (h *Handler) Knockout(u *unit.Unit, log *event.Log, format string, args ...any) bool {
	if u.Alive() {
		return false
	}
	h.Fire(OnFatalDamage, u, log)
	if u.Alive() {
		h.logger.Debug("knockout prevented", "unit", u.ID, "hp", u.HP)
		return false
	}
	log.Add(event.Death, u, format, args...)
	return true
}

// chain is the transient context threaded through one blessing's effects.
type chain struct {
	consumed map[Resource]int
}

func (h *Handler) apply(b Blessing, u *unit.Unit, log *event.Log) {
	c := chain{consumed: make(map[Resource]int)}
	for _, e := range b.Effects {
		switch e.Kind {
		case ConsumeResource:
			h.consume(e, u, &c, log)
		case Heal:
			h.heal(e, u, &c, log)
		case RestoreEnergy:
			h.restoreEnergy(e, u, &c, log)
		case Resurrect:
			h.resurrect(e, u, log)
		default:
			h.logger.Warn("unknown blessing effect skipped", "blessing", b.ID, "effect", int(e.Kind))
			log.Add(event.Effect, u, "blessing %s: unknown effect skipped", b.ID)
		}
	}
}

func (h *Handler) unitMaxEnergy(u *unit.Unit) int {
	if u.MaxEnergy > 0 {
		return u.MaxEnergy
	}
	return h.maxEnergy
}

func (h *Handler) consume(e Effect, u *unit.Unit, c *chain, log *event.Log) {
	value := &u.HP
	if e.Resource == Energy {
		value = &u.Energy
	}
	amount := e.Amount
	if e.Percent > 0 {
		amount = core.FloorMul(*value, e.Percent/100)
	}
	amount = core.Clamp(amount, 0, *value)
	*value -= amount
	c.consumed[e.Resource] += amount
	log.Add(event.Effect, u, "consumes %d %s", amount, e.Resource)
}

func (h *Handler) basis(e Effect, u *unit.Unit, c *chain) int {
	switch e.Basis {
	case BasisCurrentHP:
		return u.HP
	case BasisMaxHP:
		return u.Current.MaxHP
	case BasisCurrentEnergy:
		return u.Energy
	case BasisMaxEnergy:
		return h.unitMaxEnergy(u)
	case BasisConsumedHP:
		return c.consumed[HP]
	case BasisConsumedEnergy:
		return c.consumed[Energy]
	default:
		return e.Amount
	}
}

func (h *Handler) heal(e Effect, u *unit.Unit, c *chain, log *event.Log) {
	if !u.Alive() {
		log.Add(event.Effect, u, "heal skipped: unit is knocked out")
		return
	}
	amount := core.Max(0, core.FloorMul(h.basis(e, u, c), e.Multiplier))
	before := u.HP
	u.HP = core.Min(u.HP+amount, u.Current.MaxHP)
	log.Add(event.Effect, u, "heals %d hp", u.HP-before)
}

func (h *Handler) restoreEnergy(e Effect, u *unit.Unit, c *chain, log *event.Log) {
	amount := core.Max(0, core.FloorMul(h.basis(e, u, c), e.Multiplier))
	before := u.Energy
	u.Energy = core.Min(u.Energy+amount, h.unitMaxEnergy(u))
	log.Add(event.Effect, u, "restores %d energy", u.Energy-before)
}

func (h *Handler) resurrect(e Effect, u *unit.Unit, log *event.Log) {
	if u.HP != 0 {
		log.Add(event.Effect, u, "resurrect skipped: unit is not knocked out")
		return
	}
	hp := e.Amount
	if e.Percent > 0 {
		hp = core.FloorMul(u.Current.MaxHP, e.Percent/100)
	}
	u.HP = core.Clamp(hp, 1, core.Max(1, u.Current.MaxHP))
	log.Add(event.Effect, u, "resurrected with %d hp", u.HP)
}

package combat

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/core"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Resolver executes actions. It is synchronous: one call fully resolves
// one action, including any blessings it triggers.
type Resolver struct {
	rules     config.CombatRules
	blessings *Handler
	logger    *log.Logger
}

// NewResolver creates a resolver. blessings may be nil.
func NewResolver(rules config.Rules, blessings *Handler, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if blessings == nil {
		blessings = NewHandler(nil, rules, logger)
	}
	return &Resolver{
		rules:     rules.Combat,
		blessings: blessings,
		logger:    logger,
	}
}

// Blessings returns the blessing handler.
func (r *Resolver) Blessings() *Handler {
	return r.blessings
}

// Multiplier returns the damage multiplier of an action kind.
func (r *Resolver) Multiplier(k ActionKind) float64 {
	switch k {
	case Attack:
		return r.rules.AttackMultiplier
	case Skill:
		return r.rules.SkillMultiplier
	case Ultimate:
		return r.rules.UltimateMultiplier
	default:
		return 0
	}
}

// Cost returns the energy an action kind requires. Attacks cost nothing.
func (r *Resolver) Cost(k ActionKind) int {
	switch k {
	case Skill:
		return r.rules.SkillCost
	case Ultimate:
		return r.rules.UltimateCost
	default:
		return 0
	}
}

// CanAfford reports whether the unit has energy for the action kind.
func (r *Resolver) CanAfford(u *unit.Unit, k ActionKind) bool {
	return u.Energy >= r.Cost(k)
}

// MaxEnergy returns the energy cap for u.
func (r *Resolver) MaxEnergy(u *unit.Unit) int {
	if u.MaxEnergy > 0 {
		return u.MaxEnergy
	}
	return r.rules.MaxEnergy
}

// Execute resolves an action by actor against the roster.
// Expected failures (no target, not enough energy) are reported as events
// and leave every unit unchanged.
func (r *Resolver) Execute(actor *unit.Unit, action Action, units unit.Roster) event.Log {
	var log event.Log

	switch action.Kind {
	case Wait:
		log.Add(event.Action, actor, "waits")
		return log
	case Attack, Skill, Ultimate:
	default:
		r.logger.Warn("unknown action ignored", "unit", actor.ID, "action", int(action.Kind))
		log.Add(event.Action, actor, "unknown action ignored")
		return log
	}

	target := units.Find(action.Target)
	switch {
	case target == nil:
		log.Add(event.Action, actor, "%s has no target", action.Kind)
		return log
	case !target.Alive():
		log.Add(event.Action, actor, "%s target %s is already down", action.Kind, target.ID)
		return log
	case !target.Faction.HostileTo(actor.Faction):
		log.Add(event.Action, actor, "%s target %s is not hostile", action.Kind, target.ID)
		return log
	}

	if !r.CanAfford(actor, action.Kind) {
		log.Add(event.Action, actor, "%s rejected: %d energy, needs %d", action.Kind, actor.Energy, r.Cost(action.Kind))
		return log
	}

	if action.Kind == Attack {
		actor.Energy = core.Clamp(actor.Energy+r.rules.AttackEnergyGain, 0, r.MaxEnergy(actor))
	} else {
		actor.Energy = core.Clamp(actor.Energy-r.Cost(action.Kind), 0, r.MaxEnergy(actor))
	}

	damage := core.Max(0, core.FloorMul(actor.Current.Attack, r.Multiplier(action.Kind)))
	target.HP = core.Max(0, target.HP-damage)
	log.Add(event.Action, actor, "%s hits %s for %d", action.Kind, target.ID, damage)

	r.blessings.Knockout(target, &log, "is knocked out by %s", actor.ID)

	if action.Kind == Ultimate && actor.Alive() {
		r.blessings.Fire(AfterUltimate, actor, &log)
		r.blessings.Knockout(actor, &log, "is drained by its own blessing")
	}
	return log
}

package effects

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/registry"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Registry holds characteristic and buff definitions and applies them to units.
// A Registry is constructed explicitly and shared by the movement calculator
// and the turn manager of one battle.
type Registry struct {
	characteristics *registry.Registry[Characteristic]
	buffs           *registry.Registry[Buff]
	logger          *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		characteristics: registry.New[Characteristic]("characteristic"),
		buffs:           registry.New[Buff]("buff"),
		logger:          logger,
	}
}

// NewDefaultRegistry creates a registry holding the built-in catalog.
func NewDefaultRegistry(logger *log.Logger) *Registry {
	r := NewRegistry(logger)
	RegisterDefaults(r)
	return r
}

// RegisterCharacteristic adds a characteristic definition.
// Panics on duplicate IDs.
func (r *Registry) RegisterCharacteristic(c Characteristic) {
	r.characteristics.Register(c.ID, c)
}

// RegisterBuff adds a buff definition.
// Panics on duplicate IDs.
func (r *Registry) RegisterBuff(b Buff) {
	r.buffs.Register(b.ID, b)
}

// Characteristic returns a characteristic definition.
func (r *Registry) Characteristic(id string) (Characteristic, bool) {
	return r.characteristics.Get(id)
}

// Buff returns a buff definition.
func (r *Registry) Buff(id string) (Buff, bool) {
	return r.buffs.Get(id)
}

// Characteristics lists registered characteristics sorted by ID.
func (r *Registry) Characteristics() []registry.Info {
	return r.characteristics.List(func(c Characteristic) string { return c.Name })
}

// Buffs lists registered buffs sorted by ID.
func (r *Registry) Buffs() []registry.Info {
	return r.buffs.List(func(b Buff) string { return b.Name })
}

// capabilities returns the definitions active on a unit: characteristics
// first, in characteristic-list order, then buffs in buff-list order.
// Unknown IDs are logged and skipped.
func (r *Registry) capabilities(u *unit.Unit) []Capability {
	caps := make([]Capability, 0, len(u.Characteristics)+len(u.Buffs))
	for _, id := range u.Characteristics {
		c, ok := r.characteristics.Get(id)
		if !ok {
			r.logger.Warn("unknown characteristic skipped", "unit", u.ID, "characteristic", id)
			continue
		}
		caps = append(caps, c.Capability)
	}
	for _, b := range u.Buffs {
		def, ok := r.buffs.Get(b.ID)
		if !ok {
			r.logger.Warn("unknown buff skipped", "unit", u.ID, "buff", b.ID)
			continue
		}
		caps = append(caps, def.Capability)
	}
	return caps
}

// RecomputeStats derives the unit's current stats from its base stats.
//
// Order is fixed:
//  1. every characteristic's modifiers, in characteristic-list order
//  2. every active buff's modifiers, in buff-list order
//
// Afterwards stats are floored at zero (max hitpoint at one) and the
// current hitpoint is clamped to the new max.
func (r *Registry) RecomputeStats(u *unit.Unit) {
	s := u.Base
	for _, c := range r.capabilities(u) {
		for _, mod := range c.Modifiers {
			mod(&s)
		}
	}

	if s.Movement < 0 {
		s.Movement = 0
	}
	if s.Attack < 0 {
		s.Attack = 0
	}
	if s.Defense < 0 {
		s.Defense = 0
	}
	if s.MaxHP < 1 {
		s.MaxHP = 1
	}

	u.Current = s
	if u.HP > s.MaxHP {
		u.HP = s.MaxHP
	}
}

// DispatchPhase fires a phase event on a unit in two ordered passes.
//
//  1. The matching handler of every characteristic runs. These may add or
//     remove buffs.
//  2. The matching handler of every buff present after pass 1 runs.
//
// On TurnEnd, buff durations then count down and buffs reaching zero are
// removed (firing OnRemove). Permanent buffs are untouched. Stats are
// recomputed last.
func (r *Registry) DispatchPhase(u *unit.Unit, p Phase) Diff {
	before := u.BuffIDs()
	ctx := &Context{Unit: u, Phase: p, reg: r}

	for _, id := range u.Characteristics {
		c, ok := r.characteristics.Get(id)
		if !ok {
			continue
		}
		if h := c.For(p); h != nil {
			h(ctx)
		}
	}

	for _, id := range u.BuffIDs() {
		// A handler earlier in this pass may have removed it.
		if !u.HasBuff(id) {
			continue
		}
		b, ok := r.buffs.Get(id)
		if !ok {
			continue
		}
		if h := b.For(p); h != nil {
			h(ctx)
		}
	}

	var expired []string
	if p == TurnEnd {
		expired = r.countdown(ctx)
	}

	r.RecomputeStats(u)

	added, removed := diffIDs(before, u.BuffIDs())
	return Diff{
		Added:   added,
		Removed: removed,
		Expired: expired,
		Notes:   ctx.notes,
	}
}

// countdown decrements timed buffs and removes the ones that ran out.
func (r *Registry) countdown(ctx *Context) []string {
	u := ctx.Unit
	var expired []string
	for i := range u.Buffs {
		if u.Buffs[i].IsPermanent() {
			continue
		}
		if u.Buffs[i].Remaining > 0 {
			u.Buffs[i].Remaining--
		}
		if u.Buffs[i].Remaining == 0 {
			expired = append(expired, u.Buffs[i].ID)
		}
	}
	for _, id := range expired {
		r.removeBuff(ctx, id)
	}
	return expired
}

// AddBuff applies a buff to a unit. Unregistered buffs are logged and ignored.
func (r *Registry) AddBuff(u *unit.Unit, id string, duration int) bool {
	if !r.buffs.Exists(id) {
		r.logger.Warn("unknown buff not applied", "unit", u.ID, "buff", id)
		return false
	}
	u.AddBuff(id, duration)
	return true
}

// RemoveBuff removes a buff explicitly, firing its OnRemove handler, and
// recomputes stats.
func (r *Registry) RemoveBuff(u *unit.Unit, id string) bool {
	ctx := &Context{Unit: u, reg: r}
	ok := r.removeBuff(ctx, id)
	if ok {
		r.RecomputeStats(u)
	}
	return ok
}

func (r *Registry) removeBuff(ctx *Context, id string) bool {
	if !ctx.Unit.RemoveBuff(id) {
		return false
	}
	if b, ok := r.buffs.Get(id); ok && b.OnRemove != nil {
		b.OnRemove(ctx)
	}
	return true
}

// IgnoresZOC reports whether any characteristic or buff exempts the unit
// from enemy zones of control.
func (r *Registry) IgnoresZOC(u *unit.Unit) bool {
	for _, c := range r.capabilities(u) {
		if c.IgnoreZOC {
			return true
		}
	}
	return false
}

// AdjustCost applies characteristic then buff terrain-cost adjustments.
// An adjuster may turn impassable terrain passable (amphibious units at sea).
// Adjusted costs never drop below 1; an unadjusted cost is returned as is.
func (r *Registry) AdjustCost(u *unit.Unit, t terrain.Type, cost int) int {
	adjusted := false
	for _, c := range r.capabilities(u) {
		if c.TerrainCost == nil {
			continue
		}
		if next := c.TerrainCost(t, cost); next != cost {
			cost, adjusted = next, true
		}
	}
	if adjusted && cost < 1 {
		cost = 1
	}
	return cost
}

package effects

import (
	"github.com/vovakirdan/hex-tactics/internal/core"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Built-in characteristic IDs.
const (
	DayActive   = "day-active"
	Nocturnal   = "nocturnal"
	Amphibious  = "amphibious"
	Skirmisher  = "skirmisher"
	Steady      = "steady"
	HeavyArmor  = "heavy-armor"
	Regenerator = "regenerating"
)

// Built-in buff IDs.
const (
	DayVigor   = "day-vigor"
	NightVigor = "night-vigor"
	Haste      = "haste"
	Guard      = "guard"
	Poison     = "poison"
	Pathfinder = "pathfinder"
)

// RegisterDefaults installs the built-in characteristics and buffs.
func RegisterDefaults(r *Registry) {
	for _, c := range defaultCharacteristics() {
		r.RegisterCharacteristic(c)
	}
	for _, b := range defaultBuffs() {
		r.RegisterBuff(b)
	}
}

func defaultCharacteristics() []Characteristic {
	return []Characteristic{
		{
			ID:   DayActive,
			Name: "Day Active",
			Capability: Capability{Hooks: Hooks{
				OnDayStart: func(ctx *Context) {
					ctx.AddBuff(DayVigor, unit.Permanent)
				},
				OnNightStart: func(ctx *Context) {
					ctx.RemoveBuff(DayVigor)
				},
			}},
		},
		{
			ID:   Nocturnal,
			Name: "Nocturnal",
			Capability: Capability{Hooks: Hooks{
				OnNightStart: func(ctx *Context) {
					ctx.AddBuff(NightVigor, unit.Permanent)
				},
				OnDayStart: func(ctx *Context) {
					ctx.RemoveBuff(NightVigor)
				},
			}},
		},
		{
			ID:   Amphibious,
			Name: "Amphibious",
			Capability: Capability{
				TerrainCost: func(t terrain.Type, cost int) int {
					if t.IsWater() {
						return 1
					}
					return cost
				},
			},
		},
		{
			ID:         Skirmisher,
			Name:       "Skirmisher",
			Capability: Capability{IgnoreZOC: true},
		},
		{
			ID:   Steady,
			Name: "Steady",
			Capability: Capability{
				Modifiers: []Modifier{SetStat(Movement, 3)},
			},
		},
		{
			ID:   HeavyArmor,
			Name: "Heavy Armor",
			Capability: Capability{
				Modifiers: []Modifier{AddStat(Defense, 5), AddStat(Movement, -1)},
			},
		},
		{
			ID:   Regenerator,
			Name: "Regenerating",
			Capability: Capability{Hooks: Hooks{
				OnTurnStart: func(ctx *Context) {
					u := ctx.Unit
					if !u.Alive() || u.HP >= u.Current.MaxHP {
						return
					}
					heal := core.Max(1, core.FloorMul(u.Current.MaxHP, 0.1))
					before := u.HP
					u.HP = core.Min(u.HP+heal, u.Current.MaxHP)
					ctx.Note("%s regenerates %d HP", u.Name, u.HP-before)
				},
			}},
		},
	}
}

func defaultBuffs() []Buff {
	return []Buff{
		{
			ID:         DayVigor,
			Name:       "Day Vigor",
			Capability: Capability{Modifiers: []Modifier{ScaleStat(Attack, 1.2)}},
		},
		{
			ID:   NightVigor,
			Name: "Night Vigor",
			Capability: Capability{
				Modifiers: []Modifier{ScaleStat(Attack, 1.2), AddStat(Movement, 1)},
			},
		},
		{
			ID:         Haste,
			Name:       "Haste",
			Capability: Capability{Modifiers: []Modifier{AddStat(Movement, 1)}},
		},
		{
			ID:         Guard,
			Name:       "Guard",
			Capability: Capability{Modifiers: []Modifier{AddStat(Defense, 10)}},
		},
		{
			ID:   Poison,
			Name: "Poison",
			Capability: Capability{Hooks: Hooks{
				OnTurnStart: func(ctx *Context) {
					u := ctx.Unit
					if !u.Alive() {
						return
					}
					dmg := core.Max(1, core.FloorMul(u.Current.MaxHP, 0.1))
					dmg = core.Min(dmg, u.HP)
					u.HP -= dmg
					ctx.Note("%s takes %d poison damage", u.Name, dmg)
				},
			}},
		},
		{
			ID:         Pathfinder,
			Name:       "Pathfinder",
			Capability: Capability{IgnoreZOC: true},
		},
	}
}

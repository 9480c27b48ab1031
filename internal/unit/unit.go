// Package unit defines the battle unit model shared by the movement, effects,
// combat and turn packages.
package unit

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
)

// Faction identifies which side a unit fights for.
type Faction uint8

const (
	Player Faction = iota
	Ally
	Enemy
)

// Factions lists every faction in phase order.
var Factions = []Faction{Player, Ally, Enemy}

// String returns the string representation of a faction.
func (f Faction) String() string {
	switch f {
	case Player:
		return "player"
	case Ally:
		return "ally"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ParseFaction converts a tag to a Faction.
func ParseFaction(s string) (Faction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return Player, true
	case "ally":
		return Ally, true
	case "enemy":
		return Enemy, true
	default:
		return Player, false
	}
}

// Side groups factions into the two opposing camps.
type Side uint8

const (
	SideFriendly Side = iota // Player and Ally
	SideHostile              // Enemy
)

// Side returns the camp a faction belongs to.
func (f Faction) Side() Side {
	if f == Enemy {
		return SideHostile
	}
	return SideFriendly
}

// HostileTo returns true if two factions are on opposing sides.
func (f Faction) HostileTo(other Faction) bool {
	return f.Side() != other.Side()
}

// Strategy drives the default action a unit queues when no action was
// chosen for it explicitly.
type Strategy uint8

const (
	Aggressive Strategy = iota // Prefers plain attacks
	Passive                    // Saves energy for the ultimate, otherwise waits
)

// String returns the string representation of a strategy.
func (s Strategy) String() string {
	switch s {
	case Aggressive:
		return "aggressive"
	case Passive:
		return "passive"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a tag to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aggressive", "":
		return Aggressive, true
	case "passive":
		return Passive, true
	default:
		return Aggressive, false
	}
}

// Stats are the modifiable combat statistics of a unit.
type Stats struct {
	Movement int
	Attack   int
	Defense  int
	MaxHP    int
}

// Buff is an active, time-limited capability on a unit.
type Buff struct {
	ID        string
	Remaining int // Turns left; Permanent buffs never count down
}

// Permanent marks a buff that only expires when explicitly removed.
const Permanent = -1

// IsPermanent returns true if the buff never expires by countdown.
func (b Buff) IsPermanent() bool {
	return b.Remaining == Permanent
}

// Unit is a single combatant on the battle map.
type Unit struct {
	ID       string
	Name     string
	Faction  Faction
	Pos      hex.Coord
	MoveType terrain.MoveType
	Strategy Strategy

	Base    Stats // Authored values
	Current Stats // Derived values, overwritten by every recompute

	HP        int
	Energy    int
	MaxEnergy int

	Characteristics []string // Innate, fixed at creation
	Buffs           []Buff   // Dynamic, in application order

	Acted           bool // Has acted this cycle
	ActionValue     int  // Countdown to the next action; lowest acts first
	BaseActionValue int  // Value restored after acting
}

// Alive returns true if the unit has hitpoints left.
func (u *Unit) Alive() bool {
	return u.HP > 0
}

// CanAct returns true if the unit is alive and has not acted this cycle.
func (u *Unit) CanAct() bool {
	return u.Alive() && !u.Acted
}

// HasCharacteristic returns true if the unit carries the characteristic.
func (u *Unit) HasCharacteristic(id string) bool {
	for _, c := range u.Characteristics {
		if c == id {
			return true
		}
	}
	return false
}

// HasBuff returns true if the buff is currently active.
func (u *Unit) HasBuff(id string) bool {
	return u.buffIndex(id) >= 0
}

// BuffIDs returns the IDs of active buffs in application order.
func (u *Unit) BuffIDs() []string {
	ids := make([]string, len(u.Buffs))
	for i, b := range u.Buffs {
		ids[i] = b.ID
	}
	return ids
}

func (u *Unit) buffIndex(id string) int {
	for i, b := range u.Buffs {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// AddBuff applies a buff. Reapplying an active buff refreshes its duration
// in place, keeping its position in the application order.
func (u *Unit) AddBuff(id string, duration int) {
	if i := u.buffIndex(id); i >= 0 {
		u.Buffs[i].Remaining = duration
		return
	}
	u.Buffs = append(u.Buffs, Buff{ID: id, Remaining: duration})
}

// RemoveBuff removes a buff. Returns false if it was not active.
func (u *Unit) RemoveBuff(id string) bool {
	i := u.buffIndex(id)
	if i < 0 {
		return false
	}
	u.Buffs = append(u.Buffs[:i], u.Buffs[i+1:]...)
	return true
}

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() *Unit {
	c := *u
	c.Characteristics = append([]string(nil), u.Characteristics...)
	c.Buffs = append([]Buff(nil), u.Buffs...)
	return &c
}

// String returns a short description of the unit.
func (u *Unit) String() string {
	return fmt.Sprintf("%s(%s hp=%d/%d en=%d av=%d)",
		u.ID, u.Faction, u.HP, u.Current.MaxHP, u.Energy, u.ActionValue)
}

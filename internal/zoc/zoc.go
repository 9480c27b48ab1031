// Package zoc implements zones of control: the cells around a unit that
// impede hostile movement.
package zoc

import (
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Rule decides which units project control, where, and who is affected.
type Rule interface {
	// ProjectsControl reports whether the unit exerts a zone at all.
	ProjectsControl(u *unit.Unit) bool

	// ControlledArea returns the cells controlled from a position.
	ControlledArea(pos hex.Coord) []hex.Coord

	// AffectsUnit reports whether a moving unit is impeded by the zone.
	AffectsUnit(u *unit.Unit) bool
}

// Exemptions reports ZOC immunity granted by characteristics or buffs.
// The effects registry implements it.
type Exemptions interface {
	IgnoresZOC(u *unit.Unit) bool
}

// Adjacent is the standard rule: every living, non-flying unit controls its
// six neighbors, and every non-flying unit without an exemption is affected.
type Adjacent struct {
	Exemptions Exemptions
}

// ProjectsControl returns true for living, non-flying units.
func (a Adjacent) ProjectsControl(u *unit.Unit) bool {
	return u.Alive() && u.MoveType != terrain.Flying
}

// ControlledArea returns the neighbors of pos.
func (a Adjacent) ControlledArea(pos hex.Coord) []hex.Coord {
	n := pos.Neighbors()
	return n[:]
}

// AffectsUnit returns false for flying units and exempted units.
func (a Adjacent) AffectsUnit(u *unit.Unit) bool {
	if u.MoveType == terrain.Flying {
		return false
	}
	if a.Exemptions != nil && a.Exemptions.IgnoresZOC(u) {
		return false
	}
	return true
}

// RuleSet combines rules. A unit is affected if any rule affects it.
type RuleSet []Rule

// AffectsUnit returns true if any rule affects the unit.
func (rs RuleSet) AffectsUnit(u *unit.Unit) bool {
	for _, r := range rs {
		if r.AffectsUnit(u) {
			return true
		}
	}
	return false
}

// EnemyZone returns the union of cells controlled by units hostile to the
// mover, computed once before a movement search for O(1) membership tests.
// Only rules that affect the mover contribute.
func (rs RuleSet) EnemyZone(mover *unit.Unit, units []*unit.Unit) hex.Set {
	zone := hex.NewSet()
	for _, r := range rs {
		if !r.AffectsUnit(mover) {
			continue
		}
		for _, other := range units {
			if other == mover || !other.Faction.HostileTo(mover.Faction) {
				continue
			}
			if !r.ProjectsControl(other) {
				continue
			}
			for _, c := range r.ControlledArea(other.Pos) {
				zone.Add(c)
			}
		}
	}
	return zone
}

package effects

import (
	"fmt"

	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// Context is passed to phase handlers. Buff changes made through the
// context go through the registry, so OnRemove handlers fire.
type Context struct {
	Unit  *unit.Unit
	Phase Phase

	reg   *Registry
	notes []string
}

// AddBuff applies a buff to the unit.
func (c *Context) AddBuff(id string, duration int) {
	c.reg.AddBuff(c.Unit, id, duration)
}

// RemoveBuff removes a buff from the unit, firing its OnRemove handler.
func (c *Context) RemoveBuff(id string) bool {
	return c.reg.removeBuff(c, id)
}

// Note records a human-readable description of something the handler did.
func (c *Context) Note(format string, args ...any) {
	c.notes = append(c.notes, fmt.Sprintf(format, args...))
}

// Diff reports what a phase dispatch changed on a unit.
type Diff struct {
	Added   []string // Buffs gained
	Removed []string // Buffs lost, including expirations
	Expired []string // Buffs that ran out of duration
	Notes   []string // Handler descriptions, in firing order
}

// Empty returns true if nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Notes) == 0
}

func diffIDs(before, after []string) (added, removed []string) {
	seen := make(map[string]bool, len(before))
	for _, id := range before {
		seen[id] = true
	}
	now := make(map[string]bool, len(after))
	for _, id := range after {
		now[id] = true
		if !seen[id] {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if !now[id] {
			removed = append(removed, id)
		}
	}
	return added, removed
}

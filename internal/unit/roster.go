package unit

import "github.com/vovakirdan/hex-tactics/internal/hex"

// Roster is the live unit collection of a battle, in insertion order.
type Roster []*Unit

// Find returns the unit with the given ID, or nil.
func (r Roster) Find(id string) *Unit {
	for _, u := range r {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// At returns the living units occupying a coordinate.
func (r Roster) At(c hex.Coord) []*Unit {
	var result []*Unit
	for _, u := range r {
		if u.Alive() && u.Pos == c {
			result = append(result, u)
		}
	}
	return result
}

// Alive returns the living units.
func (r Roster) Alive() Roster {
	result := make(Roster, 0, len(r))
	for _, u := range r {
		if u.Alive() {
			result = append(result, u)
		}
	}
	return result
}

// Hostiles returns the living units hostile to the given faction.
func (r Roster) Hostiles(f Faction) Roster {
	result := make(Roster, 0, len(r))
	for _, u := range r {
		if u.Alive() && u.Faction.HostileTo(f) {
			result = append(result, u)
		}
	}
	return result
}

// Clone returns a deep copy of every unit.
func (r Roster) Clone() Roster {
	result := make(Roster, len(r))
	for i, u := range r {
		result[i] = u.Clone()
	}
	return result
}

// Values returns value copies of every unit, suitable for immutable snapshots.
func (r Roster) Values() []Unit {
	result := make([]Unit, len(r))
	for i, u := range r {
		result[i] = *u.Clone()
	}
	return result
}

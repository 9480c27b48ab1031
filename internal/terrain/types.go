// Package terrain provides terrain tags, movement types, the rectangular
// terrain grid and the terrain/movement cost table.
package terrain

import "strings"

// Type is a terrain tag. Tags are plain strings so new terrain can be
// registered in a CostTable without touching the movement search.
type Type string

const (
	Plain     Type = "plain"
	Forest    Type = "forest"
	Mountain  Type = "mountain"
	River     Type = "river"
	Sea       Type = "sea"
	Road      Type = "road"
	Swamp     Type = "swamp"
	Ruins     Type = "ruins"
	Wasteland Type = "wasteland"
	Cliff     Type = "cliff"
)

// Types lists the built-in terrain tags in declaration order.
var Types = []Type{Plain, Forest, Mountain, River, Sea, Road, Swamp, Ruins, Wasteland, Cliff}

// IsWater returns true for terrain that amphibious units treat as easy going.
func (t Type) IsWater() bool {
	return t == River || t == Sea || t == Swamp
}

// MoveType is how a unit interacts with terrain.
type MoveType uint8

const (
	Foot   MoveType = iota // Walking units
	Ooze                   // Ground liquid: slides through water, stopped by mountains
	Float                  // Hover just above the ground
	Flying                 // Airborne: ignores ZOC, uses Float terrain costs
)

// MoveTypes lists every movement type.
var MoveTypes = []MoveType{Foot, Ooze, Float, Flying}

// String returns the string representation of a movement type.
func (m MoveType) String() string {
	switch m {
	case Foot:
		return "foot"
	case Ooze:
		return "ooze"
	case Float:
		return "float"
	case Flying:
		return "flying"
	default:
		return "unknown"
	}
}

// ParseMoveType converts a tag to a MoveType.
// Returns false for unrecognized tags.
func ParseMoveType(s string) (MoveType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "foot", "":
		return Foot, true
	case "ooze":
		return Ooze, true
	case "float", "hover":
		return Float, true
	case "flying", "fly":
		return Flying, true
	default:
		return Foot, false
	}
}

// CostLookup returns the movement type whose column is used for terrain
// cost lookups. Flying units hover over terrain like Float units.
func (m MoveType) CostLookup() MoveType {
	if m == Flying {
		return Float
	}
	return m
}

package hex

import "sort"

// Set is an unordered collection of coordinates.
type Set map[Coord]struct{}

// NewSet creates a set holding the given coordinates.
func NewSet(coords ...Coord) Set {
	s := make(Set, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a coordinate.
func (s Set) Add(c Coord) {
	s[c] = struct{}{}
}

// Has reports whether the coordinate is in the set.
func (s Set) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of coordinates in the set.
func (s Set) Len() int {
	return len(s)
}

// Union adds every coordinate of other to s.
func (s Set) Union(other Set) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Sorted returns the coordinates ordered by row then column,
// giving callers a deterministic iteration order.
func (s Set) Sorted() []Coord {
	coords := make([]Coord, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i].ToOffset(), coords[j].ToOffset()
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return coords
}

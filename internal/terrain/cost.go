package terrain

import (
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Impassable is the sentinel cost for terrain a movement type cannot enter.
const Impassable = 99

// CostProvider returns the cost of entering a terrain for a movement type.
type CostProvider interface {
	Cost(m MoveType) int
}

// CostFunc adapts a plain function to the CostProvider interface.
type CostFunc func(m MoveType) int

// Cost calls f(m).
func (f CostFunc) Cost(m MoveType) int {
	return f(m)
}

// Costs is a data-driven provider keyed by movement type.
// Missing movement types are impassable.
type Costs map[MoveType]int

// Cost returns the configured cost or Impassable.
func (c Costs) Cost(m MoveType) int {
	if v, ok := c[m]; ok {
		return v
	}
	return Impassable
}

// defaultCosts holds the built-in foot/ooze/float/flying costs per terrain.
var defaultCosts = map[Type]Costs{
	Plain:     {Foot: 1, Ooze: 1, Float: 1, Flying: 1},
	Road:      {Foot: 1, Ooze: 1, Float: 1, Flying: 1},
	Forest:    {Foot: 2, Ooze: 2, Float: 1, Flying: 1},
	Mountain:  {Foot: 3, Ooze: Impassable, Float: 2, Flying: 1},
	River:     {Foot: 3, Ooze: 1, Float: 1, Flying: 1},
	Sea:       {Foot: Impassable, Ooze: 2, Float: 1, Flying: 1},
	Swamp:     {Foot: 3, Ooze: 1, Float: 2, Flying: 1},
	Ruins:     {Foot: 2, Ooze: 2, Float: 1, Flying: 1},
	Wasteland: {Foot: 2, Ooze: 1, Float: 1, Flying: 1},
	Cliff:     {Foot: Impassable, Ooze: Impassable, Float: 3, Flying: 1},
}

// CostTable maps terrain tags to cost providers.
// Tables are constructed explicitly and passed to the movement calculator;
// there is no process-wide table.
type CostTable struct {
	mu        sync.RWMutex
	providers map[Type]CostProvider
	warned    map[Type]bool
	logger    *log.Logger
}

// NewCostTable creates a table pre-populated with the default costs for
// every built-in terrain and movement type.
func NewCostTable(logger *log.Logger) *CostTable {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &CostTable{
		providers: make(map[Type]CostProvider, len(defaultCosts)),
		warned:    make(map[Type]bool),
		logger:    logger,
	}
	for terrain, costs := range defaultCosts {
		row := make(Costs, len(costs))
		for m, c := range costs {
			row[m] = c
		}
		t.providers[terrain] = row
	}
	return t
}

// Register installs or replaces the provider for a terrain tag.
func (t *CostTable) Register(terrain Type, p CostProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.providers[terrain] = p
	delete(t.warned, terrain)
}

// Override changes a single terrain/movement-type cost. Terrain without a
// data-driven provider gets a fresh Costs row.
func (t *CostTable) Override(terrain Type, m MoveType, cost int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.providers[terrain].(Costs)
	if !ok {
		row = make(Costs)
		t.providers[terrain] = row
	}
	row[m] = cost
	delete(t.warned, terrain)
}

// Cost returns the cost of entering terrain with the given movement type.
// Unregistered terrain is impassable; the first lookup of each such tag is logged.
func (t *CostTable) Cost(terrain Type, m MoveType) int {
	t.mu.RLock()
	p, ok := t.providers[terrain]
	t.mu.RUnlock()
	if ok {
		return p.Cost(m)
	}

	t.mu.Lock()
	if !t.warned[terrain] {
		t.warned[terrain] = true
		t.logger.Warn("unregistered terrain treated as impassable", "terrain", string(terrain))
	}
	t.mu.Unlock()
	return Impassable
}

// Registered reports whether a provider exists for the terrain tag.
func (t *CostTable) Registered(terrain Type) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.providers[terrain]
	return ok
}

// Terrains returns all registered terrain tags, sorted.
func (t *CostTable) Terrains() []Type {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Type, 0, len(t.providers))
	for terrain := range t.providers {
		result = append(result, terrain)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

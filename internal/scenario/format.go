package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/terrain"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Map       YAMLMap        `yaml:"map"`
	Costs     []YAMLCost     `yaml:"costs,omitempty"`
	Units     []YAMLUnit     `yaml:"units"`
	Blessings []YAMLBlessing `yaml:"blessings,omitempty"`
}

// YAMLMap is the terrain grid. Each row lists space-separated terrain tags.
type YAMLMap struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Rows   []string `yaml:"rows"`
}

// YAMLCost overrides one terrain/movement-type cost.
type YAMLCost struct {
	Terrain string `yaml:"terrain"`
	Move    string `yaml:"move"`
	Cost    int    `yaml:"cost"`
}

// YAMLStats are authored unit statistics.
type YAMLStats struct {
	Movement int `yaml:"movement"`
	Attack   int `yaml:"attack"`
	Defense  int `yaml:"defense"`
	MaxHP    int `yaml:"max_hp"`
}

// YAMLBuff is a buff present at battle start.
type YAMLBuff struct {
	ID       string `yaml:"id"`
	Duration int    `yaml:"duration"` // -1 for permanent
}

// YAMLUnit represents a single unit in YAML format.
type YAMLUnit struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Faction         string     `yaml:"faction"`
	Col             int        `yaml:"col"`
	Row             int        `yaml:"row"`
	Move            string     `yaml:"move,omitempty"`     // Defaults to foot
	Strategy        string     `yaml:"strategy,omitempty"` // Defaults to aggressive
	Stats           YAMLStats  `yaml:"stats"`
	HP              *int       `yaml:"hp,omitempty"` // Defaults to max_hp
	Energy          int        `yaml:"energy,omitempty"`
	MaxEnergy       int        `yaml:"max_energy,omitempty"` // Defaults to the rules cap
	ActionValue     int        `yaml:"action_value"`
	BaseActionValue int        `yaml:"base_action_value,omitempty"` // Defaults to action_value
	Characteristics []string   `yaml:"characteristics,omitempty"`
	Buffs           []YAMLBuff `yaml:"buffs,omitempty"`
}

// YAMLEffect is one blessing effect.
type YAMLEffect struct {
	Type       string   `yaml:"type"`
	Resource   string   `yaml:"resource,omitempty"`
	Amount     int      `yaml:"amount,omitempty"`
	Percent    float64  `yaml:"percent,omitempty"`
	Basis      string   `yaml:"basis,omitempty"`
	Multiplier *float64 `yaml:"multiplier,omitempty"` // Defaults to 1
}

// YAMLBlessing represents a blessing in YAML format.
type YAMLBlessing struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name,omitempty"`
	Faction   string       `yaml:"faction"`
	Trigger   string       `yaml:"trigger"`
	Usage     string       `yaml:"usage"`
	MinEnergy int          `yaml:"min_energy,omitempty"`
	Effects   []YAMLEffect `yaml:"effects"`
}

// Parse decodes and validates a scenario.
//
// Structural problems (bad dimensions, duplicate IDs, units off the map)
// are errors. Unknown tags are logged and the entry is skipped; unknown
// terrain loads as-is and is impassable.
func Parse(data []byte, logger *log.Logger) (Scenario, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return Scenario{}, fmt.Errorf("scenario has no id")
	}
	logger = logger.With("scenario", ys.ID)

	grid, err := parseMap(ys.Map)
	if err != nil {
		return Scenario{}, err
	}

	s := Scenario{
		ID:   ys.ID,
		Name: ys.Name,
		Grid: grid,
	}
	if s.Name == "" {
		s.Name = s.ID
	}

	for _, yc := range ys.Costs {
		m, ok := terrain.ParseMoveType(yc.Move)
		if !ok {
			logger.Warn("unknown movement type in cost override skipped", "move", yc.Move)
			continue
		}
		s.Costs = append(s.Costs, CostOverride{Terrain: terrain.Type(yc.Terrain), Move: m, Cost: yc.Cost})
	}

	seen := make(map[string]bool)
	for _, yu := range ys.Units {
		u, ok := parseUnit(yu, logger)
		if !ok {
			continue
		}
		if seen[u.ID] {
			return Scenario{}, fmt.Errorf("duplicate unit id %q", u.ID)
		}
		if !grid.InBounds(hex.O(yu.Col, yu.Row)) {
			return Scenario{}, fmt.Errorf("unit %q at (%d,%d) is off the map", u.ID, yu.Col, yu.Row)
		}
		seen[u.ID] = true
		s.Units = append(s.Units, u)
	}

	for _, yb := range ys.Blessings {
		if b, ok := parseBlessing(yb, logger); ok {
			s.Blessings = append(s.Blessings, b)
		}
	}

	return s, nil
}

func parseMap(ym YAMLMap) (*terrain.Grid, error) {
	if ym.Width <= 0 || ym.Height <= 0 {
		return nil, fmt.Errorf("map size %dx%d is invalid", ym.Width, ym.Height)
	}
	if len(ym.Rows) != ym.Height {
		return nil, fmt.Errorf("map has %d rows, expected %d", len(ym.Rows), ym.Height)
	}

	grid := terrain.NewGrid(ym.Width, ym.Height, terrain.Plain)
	for row, line := range ym.Rows {
		tags := strings.Fields(line)
		if len(tags) != ym.Width {
			return nil, fmt.Errorf("map row %d has %d cells, expected %d", row, len(tags), ym.Width)
		}
		for col, tag := range tags {
			grid.Set(hex.O(col, row), terrain.Type(tag))
		}
	}
	return grid, nil
}

func parseUnit(yu YAMLUnit, logger *log.Logger) (*unit.Unit, bool) {
	if yu.ID == "" {
		logger.Warn("unit without id skipped")
		return nil, false
	}
	faction, ok := unit.ParseFaction(yu.Faction)
	if !ok {
		logger.Warn("unknown faction, unit skipped", "unit", yu.ID, "faction", yu.Faction)
		return nil, false
	}
	move := terrain.Foot
	if yu.Move != "" {
		if move, ok = terrain.ParseMoveType(yu.Move); !ok {
			logger.Warn("unknown movement type, unit skipped", "unit", yu.ID, "move", yu.Move)
			return nil, false
		}
	}
	strategy := unit.Aggressive
	if yu.Strategy != "" {
		if strategy, ok = unit.ParseStrategy(yu.Strategy); !ok {
			logger.Warn("unknown strategy, using aggressive", "unit", yu.ID, "strategy", yu.Strategy)
		}
	}

	stats := unit.Stats{
		Movement: yu.Stats.Movement,
		Attack:   yu.Stats.Attack,
		Defense:  yu.Stats.Defense,
		MaxHP:    yu.Stats.MaxHP,
	}
	u := &unit.Unit{
		ID:              yu.ID,
		Name:            yu.Name,
		Faction:         faction,
		Pos:             hex.O(yu.Col, yu.Row).ToCube(),
		MoveType:        move,
		Strategy:        strategy,
		Base:            stats,
		Current:         stats,
		HP:              stats.MaxHP,
		Energy:          yu.Energy,
		MaxEnergy:       yu.MaxEnergy,
		Characteristics: append([]string(nil), yu.Characteristics...),
		ActionValue:     yu.ActionValue,
		BaseActionValue: yu.BaseActionValue,
	}
	if u.Name == "" {
		u.Name = u.ID
	}
	if yu.HP != nil {
		u.HP = *yu.HP
	}
	if u.BaseActionValue == 0 {
		u.BaseActionValue = u.ActionValue
	}
	for _, b := range yu.Buffs {
		u.AddBuff(b.ID, b.Duration)
	}
	return u, true
}

func parseBlessing(yb YAMLBlessing, logger *log.Logger) (combat.Blessing, bool) {
	faction, ok := unit.ParseFaction(yb.Faction)
	if !ok {
		logger.Warn("unknown faction, blessing skipped", "blessing", yb.ID, "faction", yb.Faction)
		return combat.Blessing{}, false
	}
	trigger, ok := combat.ParseTrigger(yb.Trigger)
	if !ok {
		logger.Warn("unknown trigger, blessing skipped", "blessing", yb.ID, "trigger", yb.Trigger)
		return combat.Blessing{}, false
	}
	usage, ok := combat.ParseUsage(yb.Usage)
	if !ok {
		logger.Warn("unknown usage, blessing skipped", "blessing", yb.ID, "usage", yb.Usage)
		return combat.Blessing{}, false
	}

	b := combat.Blessing{
		ID:        yb.ID,
		Name:      yb.Name,
		Faction:   faction,
		Trigger:   trigger,
		Usage:     usage,
		MinEnergy: yb.MinEnergy,
	}
	for _, ye := range yb.Effects {
		if e, ok := parseEffect(ye, yb.ID, logger); ok {
			b.Effects = append(b.Effects, e)
		}
	}
	return b, true
}

func parseEffect(ye YAMLEffect, blessingID string, logger *log.Logger) (combat.Effect, bool) {
	kind, ok := combat.ParseEffectKind(ye.Type)
	if !ok {
		logger.Warn("unknown effect type skipped", "blessing", blessingID, "type", ye.Type)
		return combat.Effect{}, false
	}
	e := combat.Effect{
		Kind:       kind,
		Amount:     ye.Amount,
		Percent:    ye.Percent,
		Multiplier: 1,
	}
	if ye.Multiplier != nil {
		e.Multiplier = *ye.Multiplier
	}
	if ye.Resource != "" {
		if e.Resource, ok = combat.ParseResource(ye.Resource); !ok {
			logger.Warn("unknown resource, effect skipped", "blessing", blessingID, "resource", ye.Resource)
			return combat.Effect{}, false
		}
	}
	if ye.Basis != "" {
		if e.Basis, ok = combat.ParseBasis(ye.Basis); !ok {
			logger.Warn("unknown basis, effect skipped", "blessing", blessingID, "basis", ye.Basis)
			return combat.Effect{}, false
		}
	}
	return e, true
}

// Package battle assembles a scenario into a running battle: terrain, cost
// table, effect registry, movement calculator, combat resolver and turn
// manager, all owned by one value.
package battle

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/effects"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/movement"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
	"github.com/vovakirdan/hex-tactics/internal/turn"
	"github.com/vovakirdan/hex-tactics/internal/unit"
	"github.com/vovakirdan/hex-tactics/internal/zoc"
)

// ErrUnreachable is returned by Move when the destination cannot be reached.
var ErrUnreachable = errors.New("battle: destination not reachable")

// phaseKey identifies one faction phase of one cycle.
type phaseKey struct {
	turn  int
	cycle turn.Cycle
	phase unit.Faction
}

func keyOf(s turn.State) phaseKey {
	return phaseKey{turn: s.Turn, cycle: s.Cycle, phase: s.Phase}
}

// Battle is one run of a scenario.
type Battle struct {
	ID       string
	Scenario scenario.Scenario

	effects  *effects.Registry
	calc     *movement.Calculator
	manager  *turn.Manager
	resolver *combat.Resolver
	logger   *log.Logger

	mu      sync.Mutex
	history event.Log
	moved   map[string]phaseKey // Last phase in which each unit moved
	steps   int
	gated   bool // Moves limited to the current phase's faction
}

// New builds a battle from a scenario. policy may be nil.
func New(s scenario.Scenario, rules config.Rules, policy turn.Policy, logger *log.Logger) *Battle {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	logger = logger.With("battle", id[:8])

	units := s.Roster()
	fx := effects.NewDefaultRegistry(logger)
	for _, u := range units {
		fx.RecomputeStats(u)
	}

	rulesets := zoc.RuleSet{zoc.Adjacent{Exemptions: fx}}
	calc := movement.NewCalculator(s.Grid, s.CostTable(logger), fx, rulesets)
	resolver := combat.NewResolver(rules, combat.NewHandler(s.Blessings, rules, logger), logger)

	return &Battle{
		ID:       id,
		Scenario: s,
		effects:  fx,
		calc:     calc,
		manager:  turn.NewManager(units, fx, resolver, policy, rules, logger),
		resolver: resolver,
		logger:   logger,
		moved:    make(map[string]phaseKey),
		gated:    rules.Turn.PhaseGating,
	}
}

// Manager returns the turn manager.
func (b *Battle) Manager() *turn.Manager {
	return b.manager
}

// Start opens the battle.
func (b *Battle) Start() event.Log {
	return b.record(b.manager.Start())
}

// Step runs the next turn or phase change.
func (b *Battle) Step() event.Log {
	return b.count(b.manager.Step())
}

// StepAfter schedules the next step after delay. then receives its events
// once they are recorded.
func (b *Battle) StepAfter(delay time.Duration, then func(event.Log)) *turn.Continuation {
	return b.manager.Defer(delay, func(log event.Log) {
		log = b.count(log)
		if then != nil {
			then(log)
		}
	})
}

// Run steps until the battle is decided or maxSteps is reached.
func (b *Battle) Run(maxSteps int) turn.Outcome {
	for i := 0; i < maxSteps; i++ {
		if b.manager.Outcome().Decided() {
			break
		}
		if len(b.Step()) == 0 {
			break
		}
	}
	return b.manager.Outcome()
}

// Reachable returns the cells the unit can end a move on.
func (b *Battle) Reachable(unitID string) (hex.Set, error) {
	var cells hex.Set
	err := b.manager.Update(func(_ turn.State, units unit.Roster) error {
		u := units.Find(unitID)
		if u == nil {
			return fmt.Errorf("battle: unknown unit %q", unitID)
		}
		cells = b.calc.Reachable(u, units)
		return nil
	})
	return cells, err
}

// Move commits a move to a reachable cell. A unit moves at most once per
// phase; with phase gating only units of the current phase may move.
func (b *Battle) Move(unitID string, dest hex.Coord) (event.Log, error) {
	var log event.Log
	err := b.manager.Update(func(state turn.State, units unit.Roster) error {
		u := units.Find(unitID)
		switch {
		case u == nil:
			return fmt.Errorf("battle: unknown unit %q", unitID)
		case !u.Alive():
			return fmt.Errorf("battle: unit %q is knocked out", unitID)
		case b.gated && u.Faction != state.Phase:
			return fmt.Errorf("battle: unit %q cannot move during the %s phase", unitID, state.Phase)
		}

		// Held until the position is written so two moves of one unit
		// cannot both pass the check.
		b.mu.Lock()
		defer b.mu.Unlock()
		key := keyOf(state)
		if b.moved[unitID] == key {
			return fmt.Errorf("battle: unit %q already moved this phase", unitID)
		}

		path, ok := b.calc.Path(u, units, dest)
		if !ok {
			return ErrUnreachable
		}
		u.Pos = dest
		b.moved[unitID] = key
		log.Add(event.Action, u, "moves %s -> %s (%d steps)", path[0].ToOffset(), dest.ToOffset(), len(path)-1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.record(log), nil
}

// Snapshot returns the current battle state.
func (b *Battle) Snapshot() turn.Snapshot {
	return b.manager.Snapshot()
}

// History returns every event recorded so far.
func (b *Battle) History() event.Log {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append(event.Log(nil), b.history...)
}

// Result summarizes the battle for archiving.
func (b *Battle) Result() ResultData {
	snap := b.manager.Snapshot()
	b.mu.Lock()
	defer b.mu.Unlock()
	return ResultData{
		BattleID:   b.ID,
		ScenarioID: b.Scenario.ID,
		Outcome:    snap.Outcome.String(),
		Turns:      snap.State.Turn,
		Steps:      b.steps,
		Events:     append(event.Log(nil), b.history...),
	}
}

// Save archives the battle result.
func (b *Battle) Save(saver ResultSaver) error {
	if err := saver.SaveBattleResult(b.Result()); err != nil {
		return fmt.Errorf("battle: save %s: %w", b.ID, err)
	}
	return nil
}

func (b *Battle) count(log event.Log) event.Log {
	if len(log) > 0 {
		b.mu.Lock()
		b.steps++
		b.mu.Unlock()
	}
	return b.record(log)
}

func (b *Battle) record(log event.Log) event.Log {
	if len(log) == 0 {
		return log
	}
	b.mu.Lock()
	b.history = append(b.history, log...)
	b.mu.Unlock()
	return log
}

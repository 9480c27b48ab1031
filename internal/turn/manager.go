package turn

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/core"
	"github.com/vovakirdan/hex-tactics/internal/effects"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

// queued is a pending action. Explicit actions came from Queue and survive
// requeueing; default actions are recomputed after every turn.
type queued struct {
	action   combat.Action
	explicit bool
}

// Manager owns the turn state, the action queue and the unit roster of a
// battle. Every exported method is safe for concurrent use; all mutation
// is serialized through one mutex.
type Manager struct {
	mu       sync.Mutex
	state    State
	units    unit.Roster
	pending  map[string]queued
	effects  *effects.Registry
	resolver *combat.Resolver
	policy   Policy
	rules    config.TurnRules
	logger   *log.Logger
}

// NewManager creates a manager for the roster, starting on turn 1,
// day, player phase. policy may be nil, in which case default actions wait.
func NewManager(units unit.Roster, fx *effects.Registry, resolver *combat.Resolver, policy Policy, rules config.Rules, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if policy == nil {
		policy = noTargets{}
	}
	return &Manager{
		state:    State{Turn: 1, Cycle: Day, Phase: unit.Player},
		units:    units,
		pending:  make(map[string]queued),
		effects:  fx,
		resolver: resolver,
		policy:   policy,
		rules:    rules.Turn,
		logger:   logger,
	}
}

// Start opens the battle: every living unit receives the day-start event
// and default actions are queued.
func (m *Manager) Start() event.Log {
	m.mu.Lock()
	defer m.mu.Unlock()

	var log event.Log
	log.Add(event.TurnStart, nil, "%s begins", m.state)
	m.broadcast(effects.DayStart, &log)
	m.requeue()
	return log
}

// State returns the current turn state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetPaused pauses or resumes turn processing.
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Paused = paused
}

// WaitDelay is the pacing delay a presentation layer should apply after a
// wait action.
func (m *Manager) WaitDelay() time.Duration {
	return time.Duration(m.rules.WaitDelayMS) * time.Millisecond
}

// Queue sets the action a unit performs on its next turn, replacing any
// default action.
func (m *Manager) Queue(unitID string, action combat.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.units.Find(unitID)
	if u == nil {
		return fmt.Errorf("turn: unknown unit %q", unitID)
	}
	if !u.Alive() {
		return fmt.Errorf("turn: unit %q is knocked out", unitID)
	}
	m.pending[unitID] = queued{action: action, explicit: true}
	return nil
}

// Pending returns the queued action for a unit.
func (m *Manager) Pending(unitID string) (combat.Action, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.pending[unitID]
	return q.action, ok
}

// Outcome reports whether one side has been wiped out.
func (m *Manager) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome()
}

func (m *Manager) outcome() Outcome {
	friendly, hostile := false, false
	for _, u := range m.units {
		if !u.Alive() {
			continue
		}
		if u.Faction.Side() == unit.SideFriendly {
			friendly = true
		} else {
			hostile = true
		}
	}
	switch {
	case friendly && hostile:
		return Undecided
	case friendly:
		return Victory
	case hostile:
		return Defeat
	default:
		return Draw
	}
}

// Snapshot returns a deep copy of the battle state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending := make(map[string]combat.Action, len(m.pending))
	for id, q := range m.pending {
		pending[id] = q.action
	}
	return Snapshot{
		State:   m.state,
		Outcome: m.outcome(),
		Units:   m.units.Values(),
		Pending: pending,
	}
}

// Update runs fn with exclusive access to the live roster and the state it
// belongs to. It is the only way for external code, such as movement
// commits, to mutate units. fn must not call back into the manager.
func (m *Manager) Update(fn func(s State, units unit.Roster) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.state, m.units)
}

// next selects the unit with the lowest action value among every living
// unit that has not acted this cycle. With phase gating only units of the
// current phase's faction are eligible. Ties go to the lowest unit ID.
func (m *Manager) next() *unit.Unit {
	var best *unit.Unit
	for _, u := range m.units {
		if !u.CanAct() {
			continue
		}
		if m.rules.PhaseGating && u.Faction != m.state.Phase {
			continue
		}
		if best == nil || u.ActionValue < best.ActionValue ||
			(u.ActionValue == best.ActionValue && u.ID < best.ID) {
			best = u
		}
	}
	return best
}

// ProcessTurn resolves one unit's turn and returns the events it produced.
// It is a no-op when paused, when the battle is decided, or when no unit
// can act.
func (m *Manager) ProcessTurn() event.Log {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Paused || m.outcome().Decided() {
		return nil
	}
	actor := m.next()
	if actor == nil {
		return nil
	}

	m.state.Active = actor.ID
	defer func() { m.state.Active = "" }()

	var log event.Log
	elapsed := actor.ActionValue
	for _, u := range m.units {
		if u.Alive() {
			u.ActionValue -= elapsed
		}
	}
	log.Add(event.TurnStart, actor, "%s: %s acts", m.state, actor.ID)

	m.dispatch(actor, effects.TurnStart, &log)
	blessings := m.resolver.Blessings()
	blessings.Fire(combat.OnTurnStart, actor, &log)
	if !blessings.Knockout(actor, &log, "falls before acting") {
		m.effects.RecomputeStats(actor)
		action := m.take(actor)
		log = append(log, m.resolver.Execute(actor, action, m.units)...)
	}

	actor.ActionValue = actor.BaseActionValue
	if actor.Alive() {
		gain := core.Min(m.rules.EnergyRegen, core.Max(0, m.resolver.MaxEnergy(actor)-actor.Energy))
		actor.Energy += gain
		if gain > 0 {
			log.Add(event.Effect, actor, "regenerates %d energy", gain)
		}
		m.dispatch(actor, effects.TurnEnd, &log)
		blessings.Fire(combat.OnTurnEnd, actor, &log)
		blessings.Knockout(actor, &log, "falls at the end of its turn")
	}

	actor.Acted = true
	log.Add(event.TurnEnd, actor, "turn ends")
	m.requeue()

	m.logger.Debug("turn processed", "unit", actor.ID, "events", len(log), "state", m.state.String())
	return log
}

// Advance rotates the phase player -> ally -> enemy. After the enemy phase
// the cycle flips and the player phase begins again; the turn number
// increments on the night-to-day flip. Every unit may act again.
func (m *Manager) Advance() event.Log {
	m.mu.Lock()
	defer m.mu.Unlock()

	var log event.Log
	switch m.state.Phase {
	case unit.Player:
		m.state.Phase = unit.Ally
	case unit.Ally:
		m.state.Phase = unit.Enemy
	default:
		m.state.Phase = unit.Player
		if m.state.Cycle == Day {
			m.broadcast(effects.DayEnd, &log)
			m.state.Cycle = Night
			log.Add(event.Effect, nil, "night falls")
			m.broadcast(effects.NightStart, &log)
		} else {
			m.broadcast(effects.NightEnd, &log)
			m.state.Cycle = Day
			m.state.Turn++
			log.Add(event.Effect, nil, "day breaks")
			m.broadcast(effects.DayStart, &log)
		}
	}

	for _, u := range m.units {
		u.Acted = false
	}
	log.Add(event.TurnStart, nil, "%s begins", m.state)
	m.requeue()
	return log
}

// Step processes the next turn, or advances the phase when nobody can act.
func (m *Manager) Step() event.Log {
	if log := m.ProcessTurn(); len(log) > 0 {
		return log
	}

	m.mu.Lock()
	stalled := m.state.Paused || m.outcome().Decided()
	m.mu.Unlock()
	if stalled {
		return nil
	}
	return m.Advance()
}

// take pops the unit's pending action, computing a default if none exists.
func (m *Manager) take(u *unit.Unit) combat.Action {
	q, ok := m.pending[u.ID]
	delete(m.pending, u.ID)
	if ok {
		return q.action
	}
	return m.defaultAction(u)
}

// defaultAction picks the strategy-driven action kind and asks the policy
// for a target. Without a target the unit waits.
func (m *Manager) defaultAction(u *unit.Unit) combat.Action {
	kind := combat.Attack
	if u.Strategy == unit.Passive {
		if !m.resolver.CanAfford(u, combat.Ultimate) {
			return combat.WaitAction()
		}
		kind = combat.Ultimate
	}

	target, ok := m.policy.SelectTarget(*u.Clone(), m.units.Values())
	if !ok {
		return combat.WaitAction()
	}
	return combat.Action{Kind: kind, Target: target}
}

// requeue refreshes default actions for every unit that can still act.
func (m *Manager) requeue() {
	for id, q := range m.pending {
		if u := m.units.Find(id); u == nil || !u.Alive() {
			delete(m.pending, id)
		} else if !q.explicit {
			delete(m.pending, id)
		}
	}
	for _, u := range m.units {
		if !u.CanAct() {
			continue
		}
		if _, ok := m.pending[u.ID]; ok {
			continue
		}
		m.pending[u.ID] = queued{action: m.defaultAction(u)}
	}
}

// dispatch fires a phase event on one unit and records what changed.
func (m *Manager) dispatch(u *unit.Unit, p effects.Phase, log *event.Log) {
	diff := m.effects.DispatchPhase(u, p)
	for _, id := range diff.Added {
		log.Add(event.Effect, u, "gains %s", id)
	}
	expired := make(map[string]bool, len(diff.Expired))
	for _, id := range diff.Expired {
		expired[id] = true
		log.Add(event.Effect, u, "%s wears off", id)
	}
	for _, id := range diff.Removed {
		if !expired[id] {
			log.Add(event.Effect, u, "loses %s", id)
		}
	}
	for _, note := range diff.Notes {
		log.Add(event.Effect, u, "%s", note)
	}
}

// broadcast fires a phase event on every living unit.
func (m *Manager) broadcast(p effects.Phase, log *event.Log) {
	for _, u := range m.units {
		if u.Alive() {
			m.dispatch(u, p, log)
		}
	}
}

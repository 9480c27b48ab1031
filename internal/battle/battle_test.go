package battle

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/hex"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
	"github.com/vovakirdan/hex-tactics/internal/turn"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

const duel = `
id: duel
map:
  width: 6
  height: 3
  rows:
    - "plain plain plain plain plain plain"
    - "plain plain forest plain plain plain"
    - "plain plain plain plain plain plain"
units:
  - id: hero
    faction: player
    col: 0
    row: 1
    stats: {movement: 2, attack: 60, max_hp: 100}
    action_value: 10
  - id: brute
    faction: enemy
    col: 5
    row: 1
    stats: {movement: 2, attack: 20, max_hp: 100}
    action_value: 20
`

func newDuel(t *testing.T) *Battle {
	t.Helper()
	return newDuelWithRules(t, config.DefaultRules())
}

func newDuelWithRules(t *testing.T, rules config.Rules) *Battle {
	t.Helper()
	s, err := scenario.Parse([]byte(duel), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return New(s, rules, NearestHostile, nil)
}

type fakeSaver struct {
	saved []ResultData
	err   error
}

func (f *fakeSaver) SaveBattleResult(r ResultData) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}

func TestReachable(t *testing.T) {
	b := newDuel(t)
	cells, err := b.Reachable("hero")
	if err != nil {
		t.Fatalf("Reachable() error = %v", err)
	}
	if !cells.Has(hex.O(2, 0).ToCube()) {
		t.Error("two plain steps east should be reachable")
	}
	if cells.Has(hex.O(2, 1).ToCube()) {
		t.Error("forest after a plain step costs 3 and is out of range")
	}
	if _, err := b.Reachable("ghost"); err == nil {
		t.Error("unknown unit should fail")
	}
}

func TestMove(t *testing.T) {
	b := newDuel(t)
	b.Start()

	dest := hex.O(2, 0).ToCube()
	log, err := b.Move("hero", dest)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if len(log) != 1 || log[0].Kind != event.Action {
		t.Errorf("Move() log = %v", log)
	}
	if got, _ := b.Snapshot().Unit("hero"); got.Pos != dest {
		t.Errorf("hero at %v, expected %v", got.Pos, dest)
	}

	if _, err := b.Move("hero", hex.O(3, 0).ToCube()); err == nil {
		t.Error("a second move in the same phase should fail")
	}
	if _, err := b.Move("brute", hex.O(4, 1).ToCube()); err != nil {
		t.Errorf("without phase gating any faction may move: %v", err)
	}
}

func TestMovePhaseGated(t *testing.T) {
	rules := config.DefaultRules()
	rules.Turn.PhaseGating = true
	b := newDuelWithRules(t, rules)
	b.Start()

	if _, err := b.Move("brute", hex.O(4, 1).ToCube()); err == nil {
		t.Error("enemy units cannot move during the player phase")
	}
	if got, _ := b.Snapshot().Unit("brute"); got.Pos != hex.O(5, 1).ToCube() {
		t.Errorf("brute moved to %v", got.Pos)
	}
	if _, err := b.Move("hero", hex.O(1, 1).ToCube()); err != nil {
		t.Errorf("Move() error = %v", err)
	}
}

func TestConcurrentMovesCommitOnce(t *testing.T) {
	b := newDuel(t)
	b.Start()

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Move("hero", hex.O(1, 1).ToCube()); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := ok.Load(); n != 1 {
		t.Errorf("%d moves committed, expected exactly one", n)
	}
	if n := b.History().Count(event.Action); n != 1 {
		t.Errorf("history holds %d moves, expected one", n)
	}
}

func TestMoveUnreachable(t *testing.T) {
	b := newDuel(t)
	_, err := b.Move("hero", hex.O(5, 2).ToCube())
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("Move() error = %v, expected ErrUnreachable", err)
	}
	if _, err := b.Move("hero", hex.O(1, 1).ToCube()); err != nil {
		t.Errorf("a failed move must not use up the unit's move: %v", err)
	}
}

func TestRunDuel(t *testing.T) {
	b := newDuel(t)
	b.Start()

	outcome := b.Run(100)
	if outcome != turn.Victory {
		t.Fatalf("Run() = %v, expected victory", outcome)
	}

	history := b.History()
	if history.Count(event.Death) != 1 {
		t.Errorf("expected exactly one death, got %d", history.Count(event.Death))
	}
	if history[0].Kind != event.TurnStart {
		t.Errorf("history should open with the start event, got %v", history[0])
	}
	if len(b.Step()) != 0 {
		t.Error("a decided battle should not step")
	}
}

func TestRunBuiltins(t *testing.T) {
	reg, err := scenario.Builtins(nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range reg.IDs() {
		s, _ := reg.Get(id)
		t.Run(id, func(t *testing.T) {
			b := New(s, config.DefaultRules(), NearestHostile, nil)
			b.Start()
			if outcome := b.Run(5000); !outcome.Decided() {
				t.Errorf("battle still undecided after 5000 steps")
			}
			// The template roster stays untouched.
			for _, u := range s.Units {
				if u.HP != u.Base.MaxHP || u.Acted {
					t.Errorf("scenario unit %s was mutated", u.ID)
				}
			}
		})
	}
}

func TestSave(t *testing.T) {
	b := newDuel(t)
	b.Start()
	b.Run(100)

	saver := &fakeSaver{}
	if err := b.Save(saver); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("expected one saved result, got %d", len(saver.saved))
	}
	r := saver.saved[0]
	if r.BattleID != b.ID || r.ScenarioID != "duel" || r.Outcome != "victory" {
		t.Errorf("result = %+v", r)
	}
	if len(r.Events) != len(b.History()) || r.Steps == 0 {
		t.Errorf("result should carry the full history, got %d events and %d steps", len(r.Events), r.Steps)
	}

	saver.err = errors.New("disk full")
	if err := b.Save(saver); !errors.Is(err, saver.err) {
		t.Errorf("Save() error = %v, expected wrapped disk full", err)
	}
}

func TestNearestHostile(t *testing.T) {
	actor := unit.Unit{ID: "a", Faction: unit.Player, HP: 10, Pos: hex.New(0, 0)}
	units := []unit.Unit{
		actor,
		{ID: "ally", Faction: unit.Ally, HP: 10, Pos: hex.New(1, 0)},
		{ID: "far", Faction: unit.Enemy, HP: 10, Pos: hex.New(3, 0)},
		{ID: "near-b", Faction: unit.Enemy, HP: 10, Pos: hex.New(0, 2)},
		{ID: "near-a", Faction: unit.Enemy, HP: 10, Pos: hex.New(2, 0)},
		{ID: "dead", Faction: unit.Enemy, HP: 0, Pos: hex.New(1, -1)},
	}

	got, ok := NearestHostile.SelectTarget(actor, units)
	if !ok || got != "near-a" {
		t.Errorf("SelectTarget() = %q, %v; expected near-a", got, ok)
	}
	if _, ok := NearestHostile.SelectTarget(actor, units[:2]); ok {
		t.Error("no hostile units should yield no target")
	}
}

func TestStepAfterRecords(t *testing.T) {
	b := newDuel(t)
	b.Start()
	before := len(b.History())

	var got event.Log
	c := b.StepAfter(time.Millisecond, func(log event.Log) {
		got = log
	})
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("continuation never ran")
	}

	if !c.Ran() || len(got) == 0 {
		t.Fatalf("Ran() = %v, events = %d", c.Ran(), len(got))
	}
	if n := len(b.History()); n != before+len(got) {
		t.Errorf("history = %d events, want %d", n, before+len(got))
	}
	if steps := b.Result().Steps; steps != 1 {
		t.Errorf("Steps = %d, want 1", steps)
	}
}

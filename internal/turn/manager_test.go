package turn

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/hex-tactics/internal/combat"
	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/effects"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/turn/mocks"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

func soldier(id string, f unit.Faction, av, base int) *unit.Unit {
	stats := unit.Stats{Movement: 3, Attack: 30, Defense: 5, MaxHP: 100}
	return &unit.Unit{
		ID:              id,
		Name:            id,
		Faction:         f,
		Base:            stats,
		Current:         stats,
		HP:              100,
		MaxEnergy:       120,
		ActionValue:     av,
		BaseActionValue: base,
	}
}

func newManager(units unit.Roster, policy Policy, blessings ...combat.Blessing) *Manager {
	return newManagerWithRules(config.DefaultRules(), units, policy, blessings...)
}

func newManagerWithRules(rules config.Rules, units unit.Roster, policy Policy, blessings ...combat.Blessing) *Manager {
	fx := effects.NewDefaultRegistry(nil)
	resolver := combat.NewResolver(rules, combat.NewHandler(blessings, rules, nil), nil)
	return NewManager(units, fx, resolver, policy, rules, nil)
}

func TestTurnOrder(t *testing.T) {
	a := soldier("a", unit.Player, 10, 50)
	b := soldier("b", unit.Player, 25, 60)
	c := soldier("c", unit.Player, 40, 70)
	enemy := soldier("z", unit.Enemy, 100, 100)
	m := newManager(unit.Roster{c, a, b, enemy}, nil)

	log := m.ProcessTurn()
	if len(log) == 0 {
		t.Fatal("ProcessTurn() produced no events")
	}
	if log[0].Kind != event.TurnStart || log[0].Unit.ID != "a" {
		t.Errorf("first event = %v, expected a's turn start", log[0])
	}
	if last := log[len(log)-1]; last.Kind != event.TurnEnd {
		t.Errorf("last event = %v, expected turn end", last)
	}

	if a.ActionValue != 50 {
		t.Errorf("acting unit action value = %d, expected 50", a.ActionValue)
	}
	if b.ActionValue != 15 || c.ActionValue != 30 {
		t.Errorf("others = [%d, %d], expected [15, 30]", b.ActionValue, c.ActionValue)
	}
	if !a.Acted {
		t.Error("acting unit should be marked as acted")
	}
	if m.State().Active != "" {
		t.Error("active slot should be empty between turns")
	}
}

func TestTieBreakByID(t *testing.T) {
	second := soldier("beta", unit.Player, 20, 50)
	first := soldier("alpha", unit.Player, 20, 50)
	m := newManager(unit.Roster{second, first, soldier("z", unit.Enemy, 99, 99)}, nil)

	log := m.ProcessTurn()
	if log[0].Unit.ID != "alpha" {
		t.Errorf("tie went to %s, expected alpha", log[0].Unit.ID)
	}
}

func TestInitiativeIgnoresFaction(t *testing.T) {
	a := soldier("a", unit.Ally, 10, 50)
	b := soldier("b", unit.Player, 25, 60)
	c := soldier("c", unit.Enemy, 40, 70)
	m := newManager(unit.Roster{b, c, a}, nil)

	if m.State().Phase != unit.Player {
		t.Fatal("battle should open in the player phase")
	}
	log := m.ProcessTurn()
	if len(log) == 0 || log[0].Unit.ID != "a" {
		t.Fatalf("first actor = %v, expected the ally with action value 10", log)
	}
	if a.ActionValue != 50 {
		t.Errorf("acting unit action value = %d, expected 50", a.ActionValue)
	}
	if b.ActionValue != 15 || c.ActionValue != 30 {
		t.Errorf("others = [%d, %d], expected [15, 30]", b.ActionValue, c.ActionValue)
	}

	// Everyone gets a turn before the phase rotates.
	m.ProcessTurn()
	m.ProcessTurn()
	if !b.Acted || !c.Acted {
		t.Error("every unit should act within the phase")
	}
	if log := m.ProcessTurn(); log != nil {
		t.Errorf("nobody is left to act, got %v", log)
	}
}

func TestPhaseGating(t *testing.T) {
	rules := config.DefaultRules()
	rules.Turn.PhaseGating = true
	hero := soldier("hero", unit.Player, 30, 50)
	quick := soldier("quick", unit.Enemy, 1, 50)
	m := newManagerWithRules(rules, unit.Roster{hero, quick}, nil)

	log := m.ProcessTurn()
	if log[0].Unit.ID != "hero" {
		t.Errorf("enemy acted during the player phase")
	}
	if log := m.ProcessTurn(); log != nil {
		t.Errorf("no player unit can act, got %v", log)
	}

	m.Advance() // ally phase, nobody there
	if log := m.ProcessTurn(); log != nil {
		t.Errorf("ally phase has no units, got %v", log)
	}
	m.Advance()
	log = m.ProcessTurn()
	if len(log) == 0 || log[0].Unit.ID != "quick" {
		t.Errorf("enemy phase should let quick act, got %v", log)
	}
}

func TestAdvanceCycle(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	hero.Characteristics = []string{effects.DayActive}
	m := newManager(unit.Roster{hero, soldier("z", unit.Enemy, 10, 50)}, nil)

	m.Start()
	if !hero.HasBuff(effects.DayVigor) {
		t.Fatal("day-active unit should gain day-vigor at the start")
	}
	if hero.Current.Attack != 36 {
		t.Errorf("attack with day-vigor = %d, expected 36", hero.Current.Attack)
	}

	m.ProcessTurn()
	m.Advance()
	m.Advance()
	if s := m.State(); s.Phase != unit.Enemy || s.Cycle != Day || s.Turn != 1 {
		t.Errorf("state = %+v, expected day enemy phase of turn 1", s)
	}

	m.Advance()
	s := m.State()
	if s.Phase != unit.Player || s.Cycle != Night || s.Turn != 1 {
		t.Errorf("state = %+v, expected night player phase of turn 1", s)
	}
	if hero.HasBuff(effects.DayVigor) {
		t.Error("day-vigor should be stripped at night start")
	}
	if hero.Acted {
		t.Error("Advance should clear the acted flag")
	}

	m.Advance()
	m.Advance()
	m.Advance()
	s = m.State()
	if s.Cycle != Day || s.Turn != 2 {
		t.Errorf("state = %+v, expected day of turn 2", s)
	}
	if !hero.HasBuff(effects.DayVigor) {
		t.Error("day-vigor should return at day start")
	}
}

func TestNoOpConditions(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	m := newManager(unit.Roster{hero, soldier("z", unit.Enemy, 10, 50)}, nil)

	m.SetPaused(true)
	if log := m.ProcessTurn(); log != nil {
		t.Errorf("paused manager produced %v", log)
	}
	if log := m.Step(); log != nil {
		t.Errorf("paused Step produced %v", log)
	}
	if hero.ActionValue != 10 {
		t.Error("paused manager must not touch action values")
	}

	m.SetPaused(false)
	if log := m.ProcessTurn(); len(log) == 0 {
		t.Error("resumed manager should process the turn")
	}
}

func TestDefaultActions(t *testing.T) {
	ctrl := gomock.NewController(t)
	policy := mocks.NewMockPolicy(ctrl)

	hero := soldier("hero", unit.Player, 10, 50)
	foe := soldier("foe", unit.Enemy, 50, 50)
	foe.Strategy = unit.Passive
	policy.EXPECT().SelectTarget(gomock.Any(), gomock.Any()).Return("foe", true).AnyTimes()

	m := newManager(unit.Roster{hero, foe}, policy)
	m.Start()
	if action, ok := m.Pending("hero"); !ok || action.Kind != combat.Attack || action.Target != "foe" {
		t.Errorf("hero default = %v, %v; expected attack -> foe", action, ok)
	}
	if action, _ := m.Pending("foe"); action.Kind != combat.Wait {
		t.Errorf("passive unit without energy should wait, got %v", action)
	}

	m.ProcessTurn()
	if foe.HP != 70 {
		t.Errorf("foe HP = %d, expected 70", foe.HP)
	}
	if hero.Energy != 30 {
		t.Errorf("hero energy = %d, expected 20 from the attack plus 10 regen", hero.Energy)
	}
}

func TestPassiveUsesUltimate(t *testing.T) {
	ctrl := gomock.NewController(t)
	policy := mocks.NewMockPolicy(ctrl)

	mage := soldier("mage", unit.Player, 10, 50)
	mage.Strategy = unit.Passive
	mage.Energy = 120
	foe := soldier("foe", unit.Enemy, 50, 50)
	foe.Strategy = unit.Passive

	policy.EXPECT().
		SelectTarget(gomock.Cond(func(u unit.Unit) bool { return u.ID == "mage" }), gomock.Any()).
		Return("foe", true)

	m := newManager(unit.Roster{mage, foe}, policy)
	m.Start()
	m.ProcessTurn()

	if foe.HP != 25 {
		t.Errorf("foe HP = %d, expected 25 after a 75 damage ultimate", foe.HP)
	}
	if mage.Energy != 10 {
		t.Errorf("mage energy = %d, expected 10 after regen", mage.Energy)
	}
}

func TestNoTargetWaits(t *testing.T) {
	ctrl := gomock.NewController(t)
	policy := mocks.NewMockPolicy(ctrl)
	policy.EXPECT().SelectTarget(gomock.Any(), gomock.Any()).Return("", false).AnyTimes()

	hero := soldier("hero", unit.Player, 10, 50)
	foe := soldier("foe", unit.Enemy, 50, 50)
	m := newManager(unit.Roster{hero, foe}, policy)

	log := m.ProcessTurn()
	waits := 0
	for _, e := range log.Filter(event.Action) {
		if e.Description == "waits" {
			waits++
		}
	}
	if waits != 1 {
		t.Errorf("expected the unit to wait, log = %v", log)
	}
}

func TestQueueOverridesDefaults(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	other := soldier("other", unit.Player, 20, 50)
	foe := soldier("foe", unit.Enemy, 50, 50)
	m := newManager(unit.Roster{hero, other, foe}, nil)

	if err := m.Queue("ghost", combat.WaitAction()); err == nil {
		t.Error("queueing for an unknown unit should fail")
	}
	if err := m.Queue("other", combat.Action{Kind: combat.Attack, Target: "foe"}); err != nil {
		t.Fatalf("Queue() error = %v", err)
	}

	m.ProcessTurn() // hero waits, requeue must keep other's explicit action
	if action, _ := m.Pending("other"); action.Kind != combat.Attack {
		t.Fatalf("explicit action lost during requeue: %v", action)
	}

	m.ProcessTurn()
	if foe.HP != 70 {
		t.Errorf("foe HP = %d, expected 70", foe.HP)
	}
	if _, ok := m.Pending("other"); ok {
		t.Error("acted units should have nothing pending")
	}
}

func TestDeathAtTurnStart(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	hero.HP = 1
	hero.Buffs = []unit.Buff{{ID: effects.Poison, Remaining: 3}}
	foe := soldier("foe", unit.Enemy, 50, 50)
	ally := soldier("ally", unit.Ally, 50, 50)
	m := newManager(unit.Roster{hero, foe, ally}, nil)
	if err := m.Queue("hero", combat.Action{Kind: combat.Attack, Target: "foe"}); err != nil {
		t.Fatal(err)
	}

	log := m.ProcessTurn()
	if hero.HP != 0 {
		t.Fatalf("poison should have knocked hero out, HP = %d", hero.HP)
	}
	if log.Count(event.Death) != 1 {
		t.Errorf("expected one death event, got %v", log)
	}
	if foe.HP != 100 {
		t.Error("a unit that falls at turn start must not act")
	}
	if hero.ActionValue != 50 || !hero.Acted {
		t.Error("the fallen unit's turn should still end")
	}
	if log[len(log)-1].Kind != event.TurnEnd {
		t.Error("log should end with the turn end")
	}
}

func TestTurnStartResurrection(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	hero.HP = 1
	hero.Energy = 80
	hero.Buffs = []unit.Buff{{ID: effects.Poison, Remaining: 3}}
	angel := combat.Blessing{
		ID:      "angel",
		Faction: unit.Player,
		Trigger: combat.OnFatalDamage,
		Usage:   combat.OncePerBattleTeam,
		Effects: []combat.Effect{{Kind: combat.Resurrect, Percent: 50}},
	}
	m := newManager(unit.Roster{hero, soldier("foe", unit.Enemy, 50, 50)}, nil, angel)

	log := m.ProcessTurn()
	if hero.HP != 50 {
		t.Errorf("hero HP = %d, expected 50", hero.HP)
	}
	if log.Count(event.Death) != 0 {
		t.Error("resurrected units do not die")
	}
}

func TestOutcome(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	hero.Current.Attack = 200
	hero.Base.Attack = 200
	foe := soldier("foe", unit.Enemy, 50, 50)
	m := newManager(unit.Roster{hero, foe}, nil)

	if m.Outcome() != Undecided {
		t.Fatal("battle should start undecided")
	}
	if err := m.Queue("hero", combat.Action{Kind: combat.Attack, Target: "foe"}); err != nil {
		t.Fatal(err)
	}
	m.ProcessTurn()
	if got := m.Outcome(); got != Victory {
		t.Errorf("Outcome() = %v, expected victory", got)
	}
	m.Advance()
	m.Advance()
	if log := m.Step(); log != nil {
		t.Errorf("decided battle should not step, got %v", log)
	}
}

func TestSnapshotIsDeep(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	hero.Buffs = []unit.Buff{{ID: effects.Haste, Remaining: 2}}
	m := newManager(unit.Roster{hero, soldier("foe", unit.Enemy, 50, 50)}, nil)

	snap := m.Snapshot()
	m.ProcessTurn()

	got, ok := snap.Unit("hero")
	if !ok {
		t.Fatal("snapshot should contain hero")
	}
	if got.Acted || got.ActionValue != 10 || got.Buffs[0].Remaining != 2 {
		t.Errorf("snapshot changed after processing: %+v", got)
	}
	if snap.State.Phase != unit.Player || snap.Outcome != Undecided {
		t.Errorf("snapshot state = %+v", snap.State)
	}
}

func TestStepAdvancesWhenPhaseIsDone(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	m := newManager(unit.Roster{hero, soldier("foe", unit.Enemy, 50, 50)}, nil)

	m.Step() // hero
	m.Step() // foe
	if m.State().Phase != unit.Player {
		t.Fatalf("phase = %v, expected player while units can still act", m.State().Phase)
	}
	m.Step()
	if m.State().Phase != unit.Ally {
		t.Errorf("phase = %v, expected ally after every unit acted", m.State().Phase)
	}
}

func TestDefer(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	m := newManager(unit.Roster{hero, soldier("foe", unit.Enemy, 50, 50)}, nil)

	got := make(chan event.Log, 1)
	c := m.Defer(time.Millisecond, func(log event.Log) { got <- log })
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("continuation never completed")
	}
	if !c.Ran() {
		t.Error("continuation should have run")
	}
	if log := <-got; len(log) == 0 {
		t.Error("deferred step should produce events")
	}
	if c.Cancel() {
		t.Error("Cancel after running should report false")
	}

	later := m.Defer(time.Hour, nil)
	if !later.Cancel() {
		t.Error("Cancel before running should succeed")
	}
	<-later.Done()
	if later.Ran() {
		t.Error("cancelled continuation must not run")
	}
	if m.WaitDelay() != 400*time.Millisecond {
		t.Errorf("WaitDelay() = %v", m.WaitDelay())
	}
}

func TestTurnEndDrainKnocksOut(t *testing.T) {
	hero := soldier("hero", unit.Player, 10, 50)
	tithe := combat.Blessing{
		ID:      "tithe",
		Faction: unit.Player,
		Trigger: combat.OnTurnEnd,
		Usage:   combat.OncePerBattle,
		Effects: []combat.Effect{{Kind: combat.ConsumeResource, Resource: combat.HP, Percent: 100}},
	}
	m := newManager(unit.Roster{hero, soldier("foe", unit.Enemy, 50, 50)}, nil, tithe)

	log := m.ProcessTurn()
	if hero.HP != 0 {
		t.Fatalf("hero HP = %d, expected the tithe to drain it", hero.HP)
	}
	deaths := log.Filter(event.Death)
	if len(deaths) != 1 || deaths[0].Unit.ID != "hero" {
		t.Errorf("expected one death for hero, got %v", log)
	}
	if log[len(log)-1].Kind != event.TurnEnd {
		t.Error("log should still end with the turn end")
	}
	if m.Outcome() != Defeat {
		t.Errorf("Outcome() = %v, expected defeat", m.Outcome())
	}
}

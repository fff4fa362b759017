package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/log"
)

var errScriptStop = errors.New("script stopped")

// ScriptedController is a PlayerController that confirms turns until told to
// stop. Used in tests to deterministically drive a match.
type ScriptedController struct {
	t    *testing.T
	name string

	mu     sync.Mutex
	turns  int
	stopAt int // fail ConfirmTurn on this turn number (0 = never)
	events []log.GameEvent
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

// StopAt makes the controller refuse its nth turn.
func (sc *ScriptedController) StopAt(n int) *ScriptedController {
	sc.stopAt = n
	return sc
}

func (sc *ScriptedController) ConfirmTurn(ctx context.Context, state *GameState, player int) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.turns++
	if sc.stopAt != 0 && sc.turns >= sc.stopAt {
		return errScriptStop
	}
	return nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.events = append(sc.events, event)
	return nil
}

func (sc *ScriptedController) Turns() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.turns
}

func (sc *ScriptedController) Events() []log.GameEvent {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return append([]log.GameEvent(nil), sc.events...)
}

// --- Test views ---

// traceView records every signal into a shared trace. When deferred, it
// holds completions until flush is called.
type traceView struct {
	name     string
	trace    *[]string
	deferred bool
	pending  []effect.Done
}

func newTraceView(name string, trace *[]string) *traceView {
	return &traceView{name: name, trace: trace}
}

func (v *traceView) record(kind string, done effect.Done) {
	*v.trace = append(*v.trace, v.name+":"+kind)
	if v.deferred {
		v.pending = append(v.pending, done)
		return
	}
	done()
}

func (v *traceView) SignalAbility(done effect.Done)            { v.record("ability", done) }
func (v *traceView) SignalHeal(done effect.Done)               { v.record("heal", done) }
func (v *traceView) ShowAttack(done effect.Done)               { v.record("attack", done) }
func (v *traceView) SignalDamage(amount int, done effect.Done) { v.record("damage", done) }
func (v *traceView) Update()                                   {}

// flush completes the oldest pending signal. Returns false if none.
func (v *traceView) flush() bool {
	if len(v.pending) == 0 {
		return false
	}
	done := v.pending[0]
	v.pending = v.pending[1:]
	done()
	return true
}

// --- Test fixtures ---

// newTable returns a standalone two-player context.
func newTable() *Context {
	p0 := &Player{Index: 0, HP: StartingHP}
	p1 := &Player{Index: 1, HP: StartingHP}
	return NewContext(p0, p1, NewInPlay())
}

var fixtureID int

// seat creates a creature for owner and brings it into play synchronously.
func seat(t *testing.T, gc *Context, card *Card, owner int) *Creature {
	t.Helper()
	fixtureID++
	c := NewCreature(card, fixtureID, owner)
	entered := false
	gc.enter(c, func() { entered = true })
	if !entered {
		t.Fatalf("%s did not finish entering play", card.Name)
	}
	return c
}

func makeDeck(cards ...*Card) []*Card {
	deck := make([]*Card, 0, len(cards))
	deck = append(deck, cards...)
	return deck
}

// runMatchToCompletion runs a match and returns the logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger

	match := NewMatch(cfg, p0, p1)
	winner, err := match.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, match.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return match, logger
}

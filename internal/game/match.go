package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/log"
)

// PlayerController is the interface that human (TCP, WebSocket), MCP and AI
// players implement.
type PlayerController interface {
	// ConfirmTurn blocks until the player lets its turn resolve.
	ConfirmTurn(ctx context.Context, state *GameState, player int) error

	// Notify sends a match event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Deck0    []*Card // Player 0's deck, in play order
	Deck1    []*Card // Player 1's deck, in play order
	Logger   log.EventLogger
	Views    ViewFactory // nil for InstantView
	MaxTurns int         // stop after this many turns (0 = DefaultMaxTurns)
}

// Match orchestrates a whole match between two players. Card hooks run on a
// single effect loop; Run drives it one turn at a time.
type Match struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	loop        *effect.Loop
	maxTurns    int
}

// NewMatch creates a new match from the given config and player controllers.
func NewMatch(cfg MatchConfig, p0, p1 PlayerController) *Match {
	gs := NewGameState()
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	loop := effect.NewLoop()

	for owner, deck := range [2][]*Card{cfg.Deck0, cfg.Deck1} {
		for _, card := range deck {
			c := gs.CreateCreature(card, owner)
			if cfg.Views != nil {
				c.View = cfg.Views(c, loop)
			}
			gs.Players[owner].Deck = append(gs.Players[owner].Deck, c)
		}
	}

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	return &Match{
		State:       gs,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		ctx:         context.Background(),
		loop:        loop,
		maxTurns:    maxTurns,
	}
}

// Run executes the entire match loop. Returns the winner (0, 1, or -1 for draw).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	gs := m.State

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	go m.loop.Run(loopCtx)

	for !gs.Over {
		if gs.Turn >= m.maxTurns {
			reason := fmt.Sprintf("turn limit reached (%d turns)", m.maxTurns)
			gs.draw(reason)
			m.log(log.NewDrawGameEvent(gs.Turn, reason))
			break
		}
		tp := gs.TurnPlayer
		if err := m.Controllers[tp].ConfirmTurn(ctx, gs, tp); err != nil {
			return -1, fmt.Errorf("%s confirm turn: %w", log.PlayerName(tp), err)
		}
		if err := effect.Await(ctx, m.loop, m.runTurn); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// Play runs the match in the background and reports the winner to
// onGameOver exactly once. Errors end the match as a draw.
func (m *Match) Play(ctx context.Context, onGameOver func(winner int, err error)) {
	go func() {
		winner, err := m.Run(ctx)
		onGameOver(winner, err)
	}()
}

// newContext builds the hook context for the current turn.
func (m *Match) newContext() *Context {
	gs := m.State
	return &Context{
		Turn:           gs.Turn,
		CurrentPlayer:  gs.CurrentPlayer(),
		OppositePlayer: gs.OpponentPlayer(),
		InPlay:         gs.InPlay,
		state:          gs,
		emit:           m.log,
	}
}

// runTurn resolves a single turn on the loop: the next card enters play, then
// every creature on the turn player's table attacks in order.
func (m *Match) runTurn(done effect.Done) {
	gs := m.State
	gs.Turn++
	m.log(log.NewTurnEvent(gs.Turn, gs.TurnPlayer))

	gc := m.newContext()
	m.playNext(gc, func() {
		m.attackPhase(gc, func() {
			if !gs.Over && gs.Exhausted() {
				const reason = "no cards left"
				gs.draw(reason)
				m.log(log.NewDrawGameEvent(gs.Turn, reason))
			}
			if !gs.Over {
				gs.TurnPlayer = gs.Opponent(gs.TurnPlayer)
			}
			done()
		})
	})
}

// playNext brings the top card of the turn player's deck into play.
func (m *Match) playNext(gc *Context, done effect.Done) {
	c := gc.CurrentPlayer.TakeNext()
	if c == nil {
		done()
		return
	}
	gc.enter(c, done)
}

// attackPhase lets each creature that was on the table when the phase began
// attack once, skipping those removed in the meantime.
func (m *Match) attackPhase(gc *Context, done effect.Done) {
	q := effect.NewQueue()
	for _, c := range gc.CurrentPlayer.TableSnapshot() {
		q.Push(func(next effect.Done) {
			if gc.Over() || !c.InPlay() {
				next()
				return
			}
			c.BeforeAttack(gc, func() {
				if gc.Over() || !c.InPlay() {
					next()
					return
				}
				c.Attack(gc, next)
			})
		})
	}
	q.ContinueWith(done)
}

// log emits a match event through the logger and notifies both players.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = m.Controllers[i].Notify(m.ctx, event)
	}
}

// AIController confirms every turn immediately.
type AIController struct{}

func (AIController) ConfirmTurn(ctx context.Context, state *GameState, player int) error {
	return ctx.Err()
}

func (AIController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

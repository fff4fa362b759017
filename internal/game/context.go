package game

import (
	"fmt"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/log"
)

// InPlay counts creatures on the tables per archetype. It belongs to a single
// match and is only mutated by the counted archetype's own hooks.
type InPlay struct {
	counts map[Archetype]int
}

// NewInPlay returns an empty registry.
func NewInPlay() *InPlay {
	return &InPlay{counts: make(map[Archetype]int)}
}

// Count returns how many creatures of the archetype are in play.
func (r *InPlay) Count(a Archetype) int {
	if r == nil {
		return 0
	}
	return r.counts[a]
}

// Add adjusts the count by delta and returns the new value. The count is
// not clamped; entry and removal hooks are expected to pair up.
func (r *InPlay) Add(a Archetype, delta int) int {
	r.counts[a] += delta
	return r.counts[a]
}

// Context is handed to every hook during a resolution. It is built fresh for
// each turn and is not owned by any card.
type Context struct {
	Turn           int
	CurrentPlayer  *Player
	OppositePlayer *Player
	InPlay         *InPlay

	state *GameState
	emit  func(log.GameEvent)
}

// NewContext builds a standalone context, for resolving hooks outside a match.
func NewContext(current, opposite *Player, inPlay *InPlay) *Context {
	if inPlay == nil {
		inPlay = NewInPlay()
	}
	return &Context{
		CurrentPlayer:  current,
		OppositePlayer: opposite,
		InPlay:         inPlay,
	}
}

// Emit records a match event.
func (gc *Context) Emit(event log.GameEvent) {
	if gc.emit != nil {
		gc.emit(event)
	}
}

// Over reports whether the match has been decided.
func (gc *Context) Over() bool {
	return gc.state != nil && gc.state.Over
}

// ownerOf returns the player whose table the creature belongs to.
func (gc *Context) ownerOf(c *Creature) *Player {
	if gc.CurrentPlayer != nil && gc.CurrentPlayer.Index == c.Owner {
		return gc.CurrentPlayer
	}
	return gc.OppositePlayer
}

// enter puts a creature onto its owner's table and runs its entry hooks.
func (gc *Context) enter(c *Creature, done effect.Done) {
	p := gc.ownerOf(c)
	p.Table = append(p.Table, c)
	c.inPlay = true
	gc.Emit(log.NewPlayCardEvent(gc.Turn, c.Owner, c.Name(), c.CurrentPower(), len(p.Table)-1))
	c.ComeIntoPlay(gc, done)
}

// destroy runs the creature's removal hooks and takes it off the table.
func (gc *Context) destroy(c *Creature, done effect.Done) {
	if !c.inPlay {
		done()
		return
	}
	c.inPlay = false
	c.Remove(gc, func() {
		if p := gc.ownerOf(c); p != nil {
			p.RemoveFromTable(c)
		}
		gc.Emit(log.NewDestroyEvent(gc.Turn, c.Owner, c.Name()))
		done()
	})
}

// damagePlayer lowers a player's HP, floored at 0, and decides the match if
// it runs out.
func (gc *Context) damagePlayer(p *Player, amount int, reason string) {
	if amount <= 0 {
		return
	}
	oldHP := p.HP
	p.HP = max(p.HP-amount, 0)
	gc.Emit(log.NewHPChangeEvent(gc.Turn, p.Index, oldHP, p.HP, reason))

	if p.HP == 0 && gc.state != nil && !gc.state.Over {
		winner := 1 - p.Index
		gc.state.finish(winner, fmt.Sprintf("%s's HP reached 0", log.PlayerName(p.Index)))
		gc.Emit(log.NewWinEvent(gc.Turn, winner, gc.state.Result))
	}
}

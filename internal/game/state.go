package game

import "fmt"

const (
	StartingHP      = 10
	DefaultMaxTurns = 100
)

// Player represents one side of the match.
type Player struct {
	Index int
	HP    int
	Deck  []*Creature // next card to play is Deck[0]
	Table []*Creature // in play, left to right
}

// DeckCount returns the number of cards left to play.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// TakeNext removes and returns the next card of the deck, or nil when the
// deck is empty.
func (p *Player) TakeNext() *Creature {
	if len(p.Deck) == 0 {
		return nil
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	return c
}

// At returns the creature in the given table slot, or nil.
func (p *Player) At(slot int) *Creature {
	if slot < 0 || slot >= len(p.Table) {
		return nil
	}
	return p.Table[slot]
}

// TableIndex returns the slot of the creature, or -1.
func (p *Player) TableIndex(c *Creature) int {
	for i, t := range p.Table {
		if t.ID == c.ID {
			return i
		}
	}
	return -1
}

// TableSnapshot returns a copy of the table that later removals do not affect.
func (p *Player) TableSnapshot() []*Creature {
	return append([]*Creature(nil), p.Table...)
}

// RemoveFromTable takes the creature off the table. The cards to its right
// shift one slot left.
func (p *Player) RemoveFromTable(c *Creature) bool {
	i := p.TableIndex(c)
	if i < 0 {
		return false
	}
	p.Table = append(p.Table[:i], p.Table[i+1:]...)
	return true
}

// --- GameState ---

// GameState holds the complete state of a match.
type GameState struct {
	Players    [2]*Player
	Turn       int // 1-based turn counter
	TurnPlayer int // 0 or 1: whose turn it is
	InPlay     *InPlay

	nextID int

	// Game result
	Winner int // 0, 1, or -1 (no winner yet, or a draw)
	Over   bool
	Result string
}

// NewGameState creates a fresh match state.
func NewGameState() *GameState {
	return &GameState{
		Players: [2]*Player{
			{Index: 0, HP: StartingHP},
			{Index: 1, HP: StartingHP},
		},
		InPlay: NewInPlay(),
		Winner: -1,
	}
}

// NextID generates a unique creature ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnPlayer]
}

// OpponentPlayer returns the non-turn player.
func (gs *GameState) OpponentPlayer() *Player {
	return gs.Players[gs.Opponent(gs.TurnPlayer)]
}

// CreateCreature creates a runtime creature from a card for a player.
func (gs *GameState) CreateCreature(card *Card, owner int) *Creature {
	return NewCreature(card, gs.NextID(), owner)
}

// Exhausted reports whether neither player has anything left to play or
// attack with.
func (gs *GameState) Exhausted() bool {
	for _, p := range gs.Players {
		if len(p.Deck) > 0 || len(p.Table) > 0 {
			return false
		}
	}
	return true
}

func (gs *GameState) finish(winner int, result string) {
	gs.Over = true
	gs.Winner = winner
	gs.Result = result
}

func (gs *GameState) draw(reason string) {
	gs.finish(-1, fmt.Sprintf("Draw: %s", reason))
}

package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/duckdog/internal/game"
	"github.com/peterkuimelis/duckdog/internal/log"
)

// NetworkController implements game.PlayerController over a TCP connection.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which player this controller is (0 or 1)
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	sv := &StateView{
		Turn:       state.Turn,
		IsYourTurn: state.TurnPlayer == player,
		You:        playerView(me),
		Opponent:   playerView(opp),
	}
	// The owner knows what comes next; the opponent only sees the count.
	if len(me.Deck) > 0 {
		sv.You.NextCard = me.Deck[0].Name()
	}
	return sv
}

func playerView(p *game.Player) PlayerView {
	pv := PlayerView{
		HP:        p.HP,
		DeckCount: p.DeckCount(),
		Table:     []CreatureView{},
	}
	for _, c := range p.Table {
		pv.Table = append(pv.Table, NewCreatureView(c))
	}
	return pv
}

// NewCreatureView creates a CreatureView for a creature on the table.
func NewCreatureView(c *game.Creature) CreatureView {
	return CreatureView{
		ID:           c.ID,
		Owner:        c.Owner,
		Name:         c.Name(),
		Power:        c.CurrentPower(),
		MaxPower:     c.MaxPower(),
		Descriptions: c.Descriptions(),
	}
}

// NewEventView converts a match event for the wire.
func NewEventView(event log.GameEvent) *EventView {
	return &EventView{
		Turn:    event.Turn,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ConfirmTurn implements game.PlayerController. It shows the player the
// board and waits for a "ready" message.
func (nc *NetworkController) ConfirmTurn(ctx context.Context, state *game.GameState, player int) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := ServerMessage{
		Type:  "your_turn",
		State: BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return fmt.Errorf("send your_turn: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return fmt.Errorf("recv ready: %w", err)
	}
	if resp.Type != "ready" {
		return fmt.Errorf("unexpected message %q, want ready", resp.Type)
	}
	return nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "game_over", Winner: winner, Result: result})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	return nc.send(ServerMessage{Type: "notify", Event: NewEventView(event)})
}

package mcp

import (
	"context"

	"github.com/peterkuimelis/duckdog/internal/game"
	"github.com/peterkuimelis/duckdog/internal/log"
	ddnet "github.com/peterkuimelis/duckdog/internal/net"
)

// MCPController implements game.PlayerController by sending turn prompts
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan struct{}
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan struct{}),
	}
}

// ConfirmTurn implements game.PlayerController.
func (c *MCPController) ConfirmTurn(ctx context.Context, state *game.GameState, player int) error {
	pending := &PendingDecision{
		Type:   DecisionYourTurn,
		Player: c.player,
		State:  ddnet.BuildStateView(state, c.player),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-c.responseCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify implements game.PlayerController.
// Only the agent's controller appends events to avoid duplicates.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == c.session.agentPlayer {
		c.session.appendEvent(*ddnet.NewEventView(event))
	}
	return nil
}

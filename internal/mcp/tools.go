package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/duckdog/internal/game"
	ddnet "github.com/peterkuimelis/duckdog/internal/net"
)

// activeSession is the singleton match session (one per stdio process).
var activeSession *GameSession

// decksFile is the path to the decks YAML file, set by main.
var decksFile string

// port is the TCP port for a human opponent, set by main.
var port string

// views paces the match; nil resolves instantly.
var views game.ViewFactory

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	decksFile = path
}

// SetPort sets the TCP port for the human player connection.
func SetPort(p string) {
	port = p
}

// SetViews sets the view factory used for new matches.
func SetViews(f game.ViewFactory) {
	views = f
}

// RegisterTools adds all match tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(describeCardsTool(), handleDescribeCards)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Duck vs Dog match. Returns the match ID, the board and the first pending prompt. "+
			"Against a human, they connect via `duckdog-cli join --addr localhost:<port> --deck N` in a separate terminal "+
			"and this call blocks until they do."),
		mcp.WithNumber("agent_deck", mcp.Required(), mcp.Description("Deck number for the agent (1-indexed from decks.yaml)")),
		mcp.WithNumber("agent_player", mcp.Required(), mcp.Description("Which player the agent is: 0 = goes first, 1 = goes second")),
		mcp.WithString("opponent", mcp.Description("'ai' (default) or 'human'")),
		mcp.WithNumber("opponent_deck", mcp.Description("Deck number for the AI opponent (default 2)")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("Resolve the agent's turn: the top card of the deck comes into play and every creature on the agent's table attacks. "+
			"Returns the events up to the agent's next turn or the end of the match."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current board, accumulated events and pending prompt without resolving anything. Read-only."),
	)
}

func describeCardsTool() mcp.Tool {
	return mcp.NewTool("describe_cards",
		mcp.WithDescription("List every card with its power, family, Duck/Dog classification and ability descriptions."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A match is already running. Only one match at a time is supported."), nil
	}

	agentDeck := request.GetInt("agent_deck", 0)
	agentPlayer := request.GetInt("agent_player", 0)
	opponent := request.GetString("opponent", OpponentAI)

	if agentDeck < 1 {
		return mcp.NewToolResultError("agent_deck must be >= 1"), nil
	}
	if agentPlayer != 0 && agentPlayer != 1 {
		return mcp.NewToolResultError("agent_player must be 0 or 1"), nil
	}
	if opponent != OpponentAI && opponent != OpponentHuman {
		return mcp.NewToolResultErrorf("opponent must be %q or %q", OpponentAI, OpponentHuman), nil
	}

	sess, err := NewGameSession(SessionConfig{
		DecksFile:    decksFile,
		AgentDeck:    agentDeck,
		AgentPlayer:  agentPlayer,
		Opponent:     opponent,
		OpponentDeck: request.GetInt("opponent_deck", 0),
		Port:         port,
		Views:        views,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first turn: %v", err), nil
	}
	if opponent == OpponentHuman {
		resp.Port = port
	}
	if resp.GameOver {
		sess.Close()
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil || pending.Type != DecisionYourTurn {
		return mcp.NewToolResultError("It is not the agent's turn."), nil
	}

	select {
	case sess.agentCtrl.responseCh <- struct{}{}:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}
	sess.currentPending = nil

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next turn: %v", err), nil
	}

	if resp.GameOver {
		sess.Close()
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No match is running. Use start_game first."), nil
	}

	sess := activeSession
	resp := &ToolResponse{
		MatchID: sess.ID,
		Events:  sess.drainEvents(),
	}

	sess.mu.Lock()
	resp.GameOver = sess.gameOver
	resp.Winner = sess.winner
	resp.Result = sess.result
	sess.mu.Unlock()

	// Only read the board while the match is parked on the agent's prompt.
	if pending := sess.currentPending; pending != nil {
		resp.State = pending.State
		if pending.Type == DecisionYourTurn {
			resp.Pending = &PendingView{Type: pending.Type, ForPlayer: sess.playerLabel(pending.Player)}
		}
	} else if resp.GameOver {
		resp.State = ddnet.BuildStateView(sess.match.State, sess.agentPlayer)
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDescribeCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(game.Catalog())), nil
}

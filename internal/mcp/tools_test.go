package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/duckdog/internal/game"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// callTool invokes a handler and returns the text of its first content block.
func callTool(t *testing.T, h toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return text.Text, res.IsError
}

func decodeResponse(t *testing.T, text string) ToolResponse {
	t.Helper()
	var resp ToolResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return resp
}

func setupDecks(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := []byte(`decks:
  - name: Thug Squad
    cards:
      - name: Thug
  - name: Pond
    cards:
      - name: Peaceful Duck
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetDecksFile(path)
	SetViews(nil)
	t.Cleanup(func() {
		if activeSession != nil {
			activeSession.Close()
			activeSession = nil
		}
	})
}

func TestMatchAgainstAI(t *testing.T) {
	setupDecks(t)

	text, isErr := callTool(t, handleStartGame, map[string]any{
		"agent_deck":    1,
		"agent_player":  0,
		"opponent":      "ai",
		"opponent_deck": 2,
	})
	if isErr {
		t.Fatalf("start_game: %s", text)
	}
	resp := decodeResponse(t, text)
	if resp.MatchID == "" {
		t.Error("missing match ID")
	}
	if resp.Pending == nil || resp.Pending.Type != DecisionYourTurn || resp.Pending.ForPlayer != "agent" {
		t.Fatalf("pending = %+v, want the agent's turn", resp.Pending)
	}
	if resp.State == nil || resp.State.You.NextCard != "Thug" {
		t.Errorf("state = %+v", resp.State)
	}

	if text, isErr := callTool(t, handleStartGame, map[string]any{"agent_deck": 1, "agent_player": 0}); !isErr {
		t.Errorf("second start_game succeeded: %s", text)
	}

	var events int
	for turns := 0; !resp.GameOver; turns++ {
		if turns > 10 {
			t.Fatal("match did not finish")
		}
		text, isErr = callTool(t, handleEndTurn, nil)
		if isErr {
			t.Fatalf("end_turn: %s", text)
		}
		resp = decodeResponse(t, text)
		events += len(resp.Events)
	}

	if resp.Winner != 0 {
		t.Errorf("winner = %d, want 0 (%s)", resp.Winner, resp.Result)
	}
	if events == 0 {
		t.Error("no events reported")
	}
	if activeSession != nil {
		t.Error("session not cleared after game over")
	}
}

func TestAgentMovingSecond(t *testing.T) {
	setupDecks(t)

	text, isErr := callTool(t, handleStartGame, map[string]any{
		"agent_deck":   2,
		"agent_player": 1,
	})
	if isErr {
		t.Fatalf("start_game: %s", text)
	}
	resp := decodeResponse(t, text)

	// The AI's first turn has already resolved.
	if resp.State == nil || resp.State.Turn != 1 || len(resp.State.Opponent.Table) != 1 {
		t.Fatalf("state = %+v, want turn 1 with the AI's table", resp.State)
	}
	if resp.State.You.HP != game.StartingHP-2 {
		t.Errorf("agent HP = %d, want %d", resp.State.You.HP, game.StartingHP-2)
	}

	text, _ = callTool(t, handleGetGameState, nil)
	state := decodeResponse(t, text)
	if state.Pending == nil || state.MatchID != resp.MatchID {
		t.Errorf("get_game_state = %+v", state)
	}
}

func TestToolErrors(t *testing.T) {
	setupDecks(t)

	if _, isErr := callTool(t, handleEndTurn, nil); !isErr {
		t.Error("end_turn without a match succeeded")
	}
	if _, isErr := callTool(t, handleGetGameState, nil); !isErr {
		t.Error("get_game_state without a match succeeded")
	}
	if _, isErr := callTool(t, handleStartGame, map[string]any{"agent_deck": 0, "agent_player": 0}); !isErr {
		t.Error("start_game accepted deck 0")
	}
	if _, isErr := callTool(t, handleStartGame, map[string]any{"agent_deck": 1, "agent_player": 0, "opponent": "goose"}); !isErr {
		t.Error("start_game accepted an unknown opponent")
	}
	if _, isErr := callTool(t, handleStartGame, map[string]any{"agent_deck": 9, "agent_player": 0}); !isErr {
		t.Error("start_game accepted a missing deck")
	}
}

func TestDescribeCards(t *testing.T) {
	text, isErr := callTool(t, handleDescribeCards, nil)
	if isErr {
		t.Fatal(text)
	}
	var infos []game.CardInfo
	if err := json.Unmarshal([]byte(text), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(game.CardRegistry) {
		t.Errorf("got %d cards, want %d", len(infos), len(game.CardRegistry))
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/duckdog/internal/game"
	"github.com/peterkuimelis/duckdog/internal/log"
	ddnet "github.com/peterkuimelis/duckdog/internal/net"
)

// DecisionType identifies what the match is waiting for.
type DecisionType string

const (
	DecisionYourTurn DecisionType = "your_turn"
	DecisionGameOver DecisionType = "game_over"
)

// Opponent kinds accepted by start_game.
const (
	OpponentAI    = "ai"
	OpponentHuman = "human"
)

// PendingDecision represents a prompt the match is waiting on.
type PendingDecision struct {
	Type   DecisionType     `json:"type"`
	Player int              `json:"player"`
	State  *ddnet.StateView `json:"state"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string            `json:"match_id,omitempty"`
	Events   []ddnet.EventView `json:"events"`
	State    *ddnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView      `json:"pending,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner,omitempty"`
	Result   string            `json:"result,omitempty"`
	Port     string            `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType `json:"type"`
	ForPlayer string       `json:"for_player"`
}

// SessionConfig describes how to set up a session.
type SessionConfig struct {
	DecksFile    string
	AgentDeck    int    // 1-indexed
	AgentPlayer  int    // 0 goes first, 1 goes second
	Opponent     string // OpponentAI or OpponentHuman
	OpponentDeck int    // AI opponent's deck; a human picks theirs when joining
	Port         string // TCP port a human opponent joins on
	Views        game.ViewFactory
}

// GameSession holds the state of a single MCP match.
type GameSession struct {
	ID          string
	match       *game.Match
	agentCtrl   *MCPController
	humanCtrl   *ddnet.NetworkController
	agentPlayer int
	cancel      context.CancelFunc

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []ddnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession creates a new session and starts its match. A human
// opponent connects with `duckdog-cli join`; this blocks until they do.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	_, agentCards, err := game.DeckByNumber(cfg.DecksFile, cfg.AgentDeck)
	if err != nil {
		return nil, fmt.Errorf("load agent deck: %w", err)
	}

	sess := &GameSession{
		ID:          uuid.NewString(),
		agentPlayer: cfg.AgentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
	}
	sess.agentCtrl = NewMCPController(cfg.AgentPlayer, sess)

	var opponentCards []*game.Card
	var opponentCtrl game.PlayerController
	switch cfg.Opponent {
	case OpponentAI, "":
		deck := cfg.OpponentDeck
		if deck == 0 {
			deck = 2
		}
		_, opponentCards, err = game.DeckByNumber(cfg.DecksFile, deck)
		if err != nil {
			return nil, fmt.Errorf("load opponent deck: %w", err)
		}
		opponentCtrl = game.AIController{}

	case OpponentHuman:
		opponentCards, err = sess.acceptHuman(cfg)
		if err != nil {
			return nil, err
		}
		opponentCtrl = sess.humanCtrl

	default:
		return nil, fmt.Errorf("unknown opponent %q", cfg.Opponent)
	}

	deck0, deck1 := agentCards, opponentCards
	ctrl0, ctrl1 := game.PlayerController(sess.agentCtrl), opponentCtrl
	if cfg.AgentPlayer == 1 {
		deck0, deck1 = deck1, deck0
		ctrl0, ctrl1 = ctrl1, ctrl0
	}

	sess.match = game.NewMatch(game.MatchConfig{
		Deck0:  deck0,
		Deck1:  deck1,
		Logger: log.NewMemoryLogger(),
		Views:  cfg.Views,
	}, ctrl0, ctrl1)

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)

	return sess, nil
}

// acceptHuman listens for a human opponent and reads their deck choice.
func (s *GameSession) acceptHuman(cfg SessionConfig) ([]*game.Card, error) {
	ln, err := stdnet.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}

	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	dec := json.NewDecoder(conn)
	var joinMsg ddnet.ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	humanDeck := joinMsg.DeckNumber
	if humanDeck == 0 {
		humanDeck = 2
	}

	_, humanCards, err := game.DeckByNumber(cfg.DecksFile, humanDeck)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("load human deck: %w", err)
	}

	s.listener = ln
	s.humanConn = conn
	s.humanCtrl = ddnet.NewNetworkController(conn, 1-cfg.AgentPlayer)
	return humanCards, nil
}

// run drives the match and reports its end through the pending channel.
func (s *GameSession) run(ctx context.Context) {
	winner, err := s.match.Run(ctx)

	result := s.match.State.Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
	} else if result == "" {
		result = fmt.Sprintf("Game over. Winner: player %d", winner)
	}

	if s.humanCtrl != nil {
		_ = s.humanCtrl.SendGameOver(winner, result)
		s.humanConn.Close()
		s.listener.Close()
	}

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	// The tool side may have stopped listening after Close.
	select {
	case s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  ddnet.BuildStateView(s.match.State, s.agentPlayer),
	}:
	case <-ctx.Done():
	}
}

// Close stops the match.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev ddnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []ddnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []ddnet.EventView{}
	}
	return events
}

// waitForPending blocks until the match prompts the agent again or ends,
// then builds a ToolResponse with the accumulated events.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		MatchID: s.ID,
		Events:  s.drainEvents(),
		State:   pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
	}
	return resp, nil
}

// playerLabel returns "agent" or "opponent" for the given player index.
func (s *GameSession) playerLabel(player int) string {
	if player == s.agentPlayer {
		return "agent"
	}
	return "opponent"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "your_turn"
	State *StateView `json:"state,omitempty"`

	// For "update": a creature on the table changed power
	Creature *CreatureView `json:"creature,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the match state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	HP        int            `json:"hp"`
	DeckCount int            `json:"deck_count"`
	NextCard  string         `json:"next_card,omitempty"` // only for "you"
	Table     []CreatureView `json:"table"`
}

// CreatureView describes a creature on the table.
type CreatureView struct {
	ID           int      `json:"id"`
	Owner        int      `json:"owner"`
	Name         string   `json:"name"`
	Power        int      `json:"power"`
	MaxPower     int      `json:"max_power"`
	Descriptions []string `json:"descriptions"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "join" or "ready"

	// For "join" (initial handshake)
	DeckNumber int `json:"deck_number,omitempty"`
}

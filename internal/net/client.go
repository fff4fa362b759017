package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

// ErrQuit is returned by RunREPL when the player leaves the match.
var ErrQuit = errors.New("player quit")

// Client connects to a match server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
	in         io.Reader
	out        io.Writer
}

// NewClient creates a REPL client over conn reading keys from in and writing
// to out. Nil streams default to the terminal.
func NewClient(conn net.Conn, playerName string, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{conn: conn, playerName: playerName, in: in, out: out}
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with deck choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	return NewClient(conn, "P2", nil, nil).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively until the
// match is over.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "your_turn":
			c.renderState(msg.State)
			if !c.waitForEnter(reader) {
				return ErrQuit
			}
			if err := enc.Encode(ClientMessage{Type: "ready"}); err != nil {
				return fmt.Errorf("send ready: %w", err)
			}

		case "game_over":
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	fmt.Fprintf(c.out, "T%-2d %-12s| %s\n", ev.Turn, ev.Type, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(c.out, "║  OPPONENT (HP: %d)  Deck: %d\n", opp.HP, opp.DeckCount)
	fmt.Fprintf(c.out, "║  Table: %s\n", formatTable(opp.Table))

	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(c.out, "║  Table: %s\n", formatTable(you.Table))
	fmt.Fprintf(c.out, "║  YOU (HP: %d)  Deck: %d", you.HP, you.DeckCount)
	if you.NextCard != "" {
		fmt.Fprintf(c.out, "  Next: %s", you.NextCard)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d", sv.Turn+1)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(c.out, turnInfo)
}

func formatTable(table []CreatureView) string {
	if len(table) == 0 {
		return "(empty)"
	}
	var parts []string
	for _, cv := range table {
		parts = append(parts, formatCreature(cv))
	}
	return strings.Join(parts, " ")
}

func formatCreature(cv CreatureView) string {
	return fmt.Sprintf("[%s %d/%d]", cv.Name, cv.Power, cv.MaxPower)
}

// waitForEnter blocks until the player presses Enter. Typing "q" or closing
// input leaves the match.
func (c *Client) waitForEnter(reader *bufio.Reader) bool {
	fmt.Fprint(c.out, "\nPress Enter to resolve your turn (q to quit) > ")
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "q" || line == "quit" {
		return false
	}
	return err == nil || line != ""
}

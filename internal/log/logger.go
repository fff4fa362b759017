package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]GameEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	events := l.Events()
	if len(events) == 0 {
		return GameEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	for len(kind) < 12 {
		kind += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

func NewPlayCardEvent(turn int, player int, cardName string, power int, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlayCard,
		Card:    cardName,
		Amount:  power,
		Details: fmt.Sprintf("%s plays %s (power %d) to slot %d", PlayerName(player), cardName, power, slot+1),
	}
}

func NewAttackEvent(turn int, player int, attacker string, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Target:  target,
		Details: fmt.Sprintf("%s attacks %s", attacker, target),
	}
}

func NewDirectAttackEvent(turn int, player int, attacker string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDirectAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks %s directly", attacker, PlayerName(1-player)),
	}
}

func NewAbilityEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAbility,
		Card:    cardName,
		Details: fmt.Sprintf("%s uses its ability", cardName),
	}
}

func NewHealEvent(turn int, player int, cardName string, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventHeal,
		Card:    cardName,
		Target:  target,
		Details: fmt.Sprintf("%s strengthens %s", cardName, target),
	}
}

func NewDamageEvent(turn int, player int, target string, amount int, oldPower, newPower int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDamage,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s takes %d damage (power %d → %d)", target, amount, oldPower, newPower),
	}
}

func NewHPChangeEvent(turn int, player int, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventHPChange,
		Amount:  oldHP - newHP,
		Details: fmt.Sprintf("%s HP: %d → %d (%s)", PlayerName(player), oldHP, newHP, reason),
	}
}

func NewDestroyEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s leaves %s's table", cardName, PlayerName(player)),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}

func NewDrawGameEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventDrawGame,
		Details: fmt.Sprintf("Draw (%s)", reason),
	}
}

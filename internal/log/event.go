package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPlayCard
	EventAttack
	EventDirectAttack
	EventAbility
	EventHeal
	EventDamage
	EventHPChange
	EventDestroy
	EventWin
	EventDrawGame
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPlayCard:
		return "PlayCard"
	case EventAttack:
		return "Attack"
	case EventDirectAttack:
		return "DirectAttack"
	case EventAbility:
		return "Ability"
	case EventHeal:
		return "Heal"
	case EventDamage:
		return "Damage"
	case EventHPChange:
		return "HPChange"
	case EventDestroy:
		return "Destroy"
	case EventWin:
		return "Win"
	case EventDrawGame:
		return "DrawGame"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Target  string    // target card name (if applicable)
	Amount  int       // damage, heal or HP delta
	Details string    // human-readable detail string
}

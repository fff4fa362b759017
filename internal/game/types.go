package game

import "fmt"

// --- Enums ---

// Family is the nominal branch a card belongs to.
type Family int

const (
	FamilyCreature Family = iota
	FamilyDuck
	FamilyDog
)

func (f Family) String() string {
	switch f {
	case FamilyDuck:
		return "Duck"
	case FamilyDog:
		return "Dog"
	default:
		return "Creature"
	}
}

// Archetype tags each concrete kind of card. In-play counters are keyed by it.
type Archetype int

const (
	ArchetypeCreature Archetype = iota
	ArchetypeDuck
	ArchetypeDog
	ArchetypeTrasher
	ArchetypeGatling
	ArchetypeLad
	ArchetypeBrewer
	ArchetypePseudoDuck
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeCreature:
		return "Creature"
	case ArchetypeDuck:
		return "Duck"
	case ArchetypeDog:
		return "Dog"
	case ArchetypeTrasher:
		return "Trasher"
	case ArchetypeGatling:
		return "Gatling"
	case ArchetypeLad:
		return "Lad"
	case ArchetypeBrewer:
		return "Brewer"
	case ArchetypePseudoDuck:
		return "PseudoDuck"
	default:
		return "Unknown"
	}
}

// --- Card definition (static) ---

type Card struct {
	Name      string
	Archetype Archetype
	Family    Family
	Power     int    // starting and maximum power
	Image     string // optional art reference
	Quacks    bool
	Swims     bool
	Abilities []*Ability // most specific first
}

func (c *Card) String() string {
	return c.Name
}

// --- Creature (runtime card on a table or in a deck) ---

type Creature struct {
	Card  *Card
	ID    int // unique instance ID within a match
	Owner int // player index (0 or 1)

	// Capability flags, copied from the card and overridable per instance.
	Quacks bool
	Swims  bool

	View View

	maxPower     int
	currentPower int
	inPlay       bool
}

// NewCreature creates a runtime instance of card at full power.
func NewCreature(card *Card, id, owner int) *Creature {
	return &Creature{
		Card:         card,
		ID:           id,
		Owner:        owner,
		Quacks:       card.Quacks,
		Swims:        card.Swims,
		maxPower:     card.Power,
		currentPower: card.Power,
	}
}

func (c *Creature) String() string {
	if c == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (%d/%d)", c.Card.Name, c.currentPower, c.maxPower)
}

// Name returns the card name.
func (c *Creature) Name() string {
	return c.Card.Name
}

// MaxPower returns the power ceiling.
func (c *Creature) MaxPower() int {
	return c.maxPower
}

// SetMaxPower changes the ceiling and re-clamps the current power.
func (c *Creature) SetMaxPower(value int) {
	if value < 0 {
		value = 0
	}
	c.maxPower = value
	c.SetCurrentPower(c.currentPower)
}

// CurrentPower returns the effective power.
func (c *Creature) CurrentPower() int {
	return c.currentPower
}

// SetCurrentPower stores value clamped to [0, MaxPower].
func (c *Creature) SetCurrentPower(value int) {
	c.currentPower = min(max(value, 0), c.maxPower)
}

// InPlay reports whether the creature is on a table.
func (c *Creature) InPlay() bool {
	return c.inPlay
}

// UpdateView asks the view to redraw the creature.
func (c *Creature) UpdateView() {
	c.view().Update()
}

func (c *Creature) view() View {
	if c.View == nil {
		return InstantView{}
	}
	return c.View
}

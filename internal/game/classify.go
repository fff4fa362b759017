package game

// Creature descriptions by likeness to ducks and dogs.
const (
	DescDuckDog  = "Duck-Dog"
	DescDuck     = "Duck"
	DescDog      = "Dog"
	DescCreature = "Creature"
)

// IsDuck reports whether the creature both quacks and swims, whatever its
// family.
func IsDuck(c *Creature) bool {
	return c != nil && c.Quacks && c.Swims
}

// IsDog reports whether the creature belongs to the dog family.
func IsDog(c *Creature) bool {
	return c != nil && c.Card != nil && c.Card.Family == FamilyDog
}

// CreatureDescription describes a creature by its likeness to ducks and dogs.
func CreatureDescription(c *Creature) string {
	duck, dog := IsDuck(c), IsDog(c)
	switch {
	case duck && dog:
		return DescDuckDog
	case duck:
		return DescDuck
	case dog:
		return DescDog
	default:
		return DescCreature
	}
}

// Descriptions lists the creature's ability texts, most specific first,
// followed by its creature description. The result is never empty.
func (c *Creature) Descriptions() []string {
	var lines []string
	for _, a := range c.Card.Abilities {
		if a.describes() {
			lines = append(lines, a.Description)
		}
	}
	return append(lines, CreatureDescription(c))
}

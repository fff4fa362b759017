package game

import (
	"fmt"
	"maps"
	"slices"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Peaceful Duck": PeacefulDuck,
	"Bandit Dog":    BanditDog,
	"Thug":          Thug,
	"Gatling":       Gatling,
	"Lad":           Lad,
	"Brewer":        Brewer,
	"Pseudo-Duck":   PseudoDuck,
}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	card, err := FindCard(name)
	if err != nil {
		panic(err.Error())
	}
	return card
}

// FindCard looks up a card by name and returns a new instance.
func FindCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("card not found in registry: %q", name)
	}
	return ctor(), nil
}

// CardInfo is a card's public summary as shown to players.
type CardInfo struct {
	Name           string   `json:"name"`
	Power          int      `json:"power"`
	Family         string   `json:"family"`
	Classification string   `json:"classification"`
	Descriptions   []string `json:"descriptions"`
	Image          string   `json:"image,omitempty"`
}

// Catalog describes every registered card, sorted by name.
func Catalog() []CardInfo {
	var infos []CardInfo
	for _, name := range slices.Sorted(maps.Keys(CardRegistry)) {
		c := NewCreature(CardRegistry[name](), 0, 0)
		infos = append(infos, CardInfo{
			Name:           c.Name(),
			Power:          c.MaxPower(),
			Family:         c.Card.Family.String(),
			Classification: CreatureDescription(c),
			Descriptions:   c.Descriptions(),
			Image:          c.Card.Image,
		})
	}
	return infos
}

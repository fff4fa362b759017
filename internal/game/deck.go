package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file. Cards are played in
// the order listed.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ParseDeckData parses deck YAML.
func ParseDeckData(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// ReadDeckFile reads and parses a deck YAML file.
func ReadDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	return ParseDeckData(data)
}

// Build instantiates the deck's cards in order. A missing count means one.
func (d DeckEntry) Build() ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		count := entry.Count
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			card, err := FindCard(entry.Name)
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", d.Name, err)
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → card slice.
func ParseDeckFile(path string) (map[string][]*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := make(map[string][]*Card)
	for _, deck := range df.Decks {
		cards, err := deck.Build()
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}

	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, []*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := deck.Build()
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

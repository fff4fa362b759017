package web

import (
	"github.com/peterkuimelis/duckdog/internal/game"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"` // in play order, repeats expanded
}

// loadDeckInfos lists the decks in a deck file without building them.
func loadDeckInfos(path string) ([]DeckInfo, error) {
	df, err := game.ReadDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := []DeckInfo{}
	for i, d := range df.Decks {
		di := DeckInfo{Number: i + 1, Name: d.Name, Cards: []string{}}
		for _, c := range d.Cards {
			count := c.Count
			if count == 0 {
				count = 1
			}
			for j := 0; j < count; j++ {
				di.Cards = append(di.Cards, c.Name)
			}
		}
		decks = append(decks, di)
	}
	return decks, nil
}

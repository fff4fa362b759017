package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeckFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := []byte(`decks:
  - name: Sheriff Start
    cards:
      - name: Peaceful Duck
      - name: Brewer
  - name: Bandit Start
    cards:
      - name: Bandit Dog
        count: 2
      - name: Pseudo-Duck
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	name, cards, err := DeckByNumber(path, 2)
	if err != nil {
		t.Fatalf("DeckByNumber: %v", err)
	}
	if name != "Bandit Start" || len(cards) != 3 {
		t.Fatalf("got %q with %d cards", name, len(cards))
	}
	if cards[0].Name != "Bandit Dog" || cards[2].Name != "Pseudo-Duck" {
		t.Errorf("cards out of order: %v", cards)
	}
	if cards[0] == cards[1] {
		t.Error("repeated entries share one *Card")
	}

	if _, _, err := DeckByNumber(path, 3); err == nil {
		t.Error("expected an error for a missing deck")
	}

	decks, err := ParseDeckFile(path)
	if err != nil {
		t.Fatalf("ParseDeckFile: %v", err)
	}
	if len(decks["Sheriff Start"]) != 2 {
		t.Errorf("Sheriff Start has %d cards", len(decks["Sheriff Start"]))
	}
}

func TestDeckUnknownCard(t *testing.T) {
	df, err := ParseDeckData([]byte("decks:\n  - name: Bad\n    cards:\n      - name: Goose\n"))
	if err != nil {
		t.Fatalf("ParseDeckData: %v", err)
	}
	if _, err := df.Decks[0].Build(); err == nil {
		t.Error("expected an error for an unknown card")
	}
}

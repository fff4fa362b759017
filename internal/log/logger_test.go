package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0))
	l.Log(NewAttackEvent(1, 0, "Bandit Dog", "Peaceful Duck"))
	l.Log(NewTurnEvent(2, 1))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d has Seq %d", i, e.Seq)
		}
	}
	if got := len(l.EventsOfType(EventNewTurn)); got != 2 {
		t.Errorf("EventsOfType(NewTurn) = %d, want 2", got)
	}
	if last := l.LastEvent(); last.Turn != 2 || last.Player != 1 {
		t.Errorf("LastEvent = %+v", last)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewHPChangeEvent(3, 1, 10, 7, "direct attack by Thug"))

	out := buf.String()
	if !strings.Contains(out, "P2 HP: 10 → 7") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasPrefix(out, "T3 ") {
		t.Errorf("missing turn prefix in %q", out)
	}
	if len(l.Events()) != 1 {
		t.Errorf("text logger did not record the event")
	}
}

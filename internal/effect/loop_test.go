package effect

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopAwait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop()
	go l.Run(ctx)

	var trace []string
	err := Await(ctx, l, func(done Done) {
		trace = append(trace, "start")
		l.Post(func() {
			trace = append(trace, "posted")
			done()
		})
	})
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if len(trace) != 2 || trace[0] != "start" || trace[1] != "posted" {
		t.Errorf("trace = %v", trace)
	}
}

func TestLoopAwaitFromOtherGoroutine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	l := NewLoop()
	go l.Run(ctx)

	err := Await(ctx, l, func(done Done) {
		time.AfterFunc(5*time.Millisecond, func() { l.Post(done) })
	})
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
}

func TestAwaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop()
	go l.Run(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Await(ctx, l, func(done Done) {})
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Await did not return after cancel")
	}
}

func TestSpeedScale(t *testing.T) {
	s := &Speed{}
	if got := s.Scale(100 * time.Millisecond); got != 100*time.Millisecond {
		t.Errorf("default scale = %v", got)
	}
	s.Set(2)
	if got := s.Scale(100 * time.Millisecond); got != 50*time.Millisecond {
		t.Errorf("scale at 2x = %v", got)
	}
	s.Set(0)
	if s.Get() != 2 {
		t.Errorf("Set(0) changed rate to %v", s.Get())
	}
}

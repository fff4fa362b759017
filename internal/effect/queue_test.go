package effect

import (
	"reflect"
	"testing"
)

func TestQueueRunsTasksInOrder(t *testing.T) {
	var order []int
	q := NewQueue()
	for i := 1; i <= 3; i++ {
		q.Push(func(done Done) {
			order = append(order, i)
			done()
		})
	}

	finals := 0
	q.ContinueWith(func() { finals++ })

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
	if finals != 1 {
		t.Errorf("final continuation fired %d times, want 1", finals)
	}
}

func TestQueueWaitsForDone(t *testing.T) {
	var pending []Done
	var started []int
	q := NewQueue()
	for i := 0; i < 3; i++ {
		q.Push(func(done Done) {
			started = append(started, i)
			pending = append(pending, done)
		})
	}

	finished := false
	q.ContinueWith(func() { finished = true })

	for step := 0; step < 3; step++ {
		if len(started) != step+1 {
			t.Fatalf("step %d: %d tasks started, want %d", step, len(started), step+1)
		}
		if finished {
			t.Fatalf("step %d: final fired before last task finished", step)
		}
		pending[step]()
	}
	if !finished {
		t.Fatal("final did not fire after the last task finished")
	}
}

func TestQueueEmptyCompletesImmediately(t *testing.T) {
	q := NewQueue()
	fired := 0
	q.ContinueWith(func() { fired++ })
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestQueueIgnoresDuplicateDone(t *testing.T) {
	runs := 0
	q := NewQueue()
	q.Push(func(done Done) {
		runs++
		done()
		done()
	})
	q.Push(func(done Done) {
		runs++
		done()
	})

	finals := 0
	q.ContinueWith(func() { finals++ })
	q.ContinueWith(func() { finals++ })

	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if finals != 1 {
		t.Errorf("finals = %d, want 1", finals)
	}
}

func TestOnceValue(t *testing.T) {
	var got []int
	k := OnceValue(func(v int) { got = append(got, v) })
	k(3)
	k(4)
	if !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("got %v, want [3]", got)
	}
}

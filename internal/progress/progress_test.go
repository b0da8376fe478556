package progress

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()

	r.Publish(Event{Phase: PhaseScanning, Message: "hello"})

	select {
	case ev := <-ch:
		if ev.Phase != PhaseScanning || ev.Message != "hello" {
			t.Errorf("got %+v", ev)
		}
		if ev.Time.IsZero() {
			t.Error("Publish should stamp a time")
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestLast(t *testing.T) {
	r := NewReporter()

	if r.Last() != nil {
		t.Error("Last should be nil before any publish")
	}

	r.Publish(Event{Phase: PhaseCleaning})
	r.Publish(Event{Phase: PhaseOrganizing})

	last := r.Last()
	if last == nil || last.Phase != PhaseOrganizing {
		t.Errorf("Last = %+v, want organizing", last)
	}
}

func TestPublishDoesNotBlockOnFullChannel(t *testing.T) {
	r := NewReporter()
	r.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			r.Publish(Event{Phase: PhaseScanning, Processed: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
}

func TestUnsubscribe(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()
	r.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	r.Publish(Event{Phase: PhaseComplete})
}

func TestCloseClosesAllSubscribers(t *testing.T) {
	r := NewReporter()
	a := r.Subscribe()
	b := r.Subscribe()

	r.Close()

	if _, ok := <-a; ok {
		t.Error("first channel should be closed")
	}
	if _, ok := <-b; ok {
		t.Error("second channel should be closed")
	}
}

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var got []Event
	dispatcher.Subscribe(EventAccountRegistered, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventAccountRegistered,
		AccountID: "acc-1",
		Timestamp: time.Now(),
	}
	dispatcher.Publish(context.Background(), event)
	dispatcher.Publish(context.Background(), Event{ID: "evt-2", Type: EventSessionRevoked})

	if len(got) != 1 {
		t.Fatalf("handler invocations = %d, want 1", len(got))
	}
	if got[0].ID != "evt-1" || got[0].AccountID != "acc-1" {
		t.Errorf("handler received %+v", got[0])
	}
}

// A failing handler must not stop delivery to the remaining subscribers.
func TestDispatcher_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	dispatcher.Subscribe(EventAccountLinked, func(context.Context, Event) error {
		return errors.New("boom")
	})
	var called bool
	dispatcher.Subscribe(EventAccountLinked, func(context.Context, Event) error {
		called = true
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventAccountLinked})
	if !called {
		t.Error("second handler should run despite the first failing")
	}
}

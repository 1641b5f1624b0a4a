package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dokzlo13/ledremote/internal/strip"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := NewWithConfig(2, 10)

	var mu sync.Mutex
	var got []Event
	var wg sync.WaitGroup
	wg.Add(2)
	handler := func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		wg.Done()
	}
	b.Subscribe(EventTypeCode, handler)
	b.Subscribe(EventTypeCode, handler)
	b.Subscribe(EventTypeButton, func(Event) { t.Error("wrong type delivered") })

	b.Publish(Event{Type: EventTypeCode, Data: map[string]interface{}{"code": 1}})
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	b.Close(ctx)

	if len(got) != 2 {
		t.Fatalf("delivered %d events, want 2", len(got))
	}
	if got[0].ID == "" || got[0].ID != got[1].ID {
		t.Errorf("ids = %q %q, want one shared id", got[0].ID, got[1].ID)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestHandlerPanicDoesNotKillWorker(t *testing.T) {
	b := NewWithConfig(1, 10)

	done := make(chan struct{})
	calls := 0
	b.Subscribe(EventTypeCode, func(e Event) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		close(done)
	})

	b.Publish(NewEvent(EventTypeCode, nil))
	b.Publish(NewEvent(EventTypeCode, nil))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second event not handled after panic")
	}
	b.Close(context.Background())
}

func TestStateNotifierSnapshots(t *testing.T) {
	b := NewWithConfig(1, 10)
	s := strip.New(strip.Options{Brightness: 42})

	events := make(chan Event, 1)
	b.Subscribe(EventTypeStateUpdated, func(e Event) { events <- e })

	NewStateNotifier(b, s, "ir").StateUpdated(strip.CallModeButton)
	s.Bri = 200

	select {
	case e := <-events:
		if e.Data[KeyCallMode] != "button-triggered" || e.Data[KeySource] != "ir" {
			t.Errorf("data = %v", e.Data)
		}
		st, ok := e.Data[KeyState].(strip.State)
		if !ok {
			t.Fatalf("state = %T", e.Data[KeyState])
		}
		if st.Brightness != 42 {
			t.Errorf("snapshot brightness = %d, want 42", st.Brightness)
		}
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	b.Close(context.Background())
}

package event_test

import (
	"sync"
	"testing"

	"github.com/shashiranjanraj/sokoni/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	bus := event.NewBus()

	var got []string
	bus.Listen("order.placed", func(payload interface{}) {
		got = append(got, "first:"+payload.(string))
	})
	bus.Listen("order.placed", func(payload interface{}) {
		got = append(got, "second:"+payload.(string))
	})

	bus.Fire("order.placed", "TRK1")

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0] != "first:TRK1" || got[1] != "second:TRK1" {
		t.Errorf("unexpected deliveries: %v", got)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	bus := event.NewBus()
	bus.Fire("never.registered", nil) // must not panic
}

func TestFireAsync(t *testing.T) {
	bus := event.NewBus()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	count := 0

	handler := func(payload interface{}) {
		mu.Lock()
		count++
		mu.Unlock()
		wg.Done()
	}
	bus.Listen("user.banned", handler)
	bus.Listen("user.banned", handler)

	bus.FireAsync("user.banned", nil)
	wg.Wait()

	if count != 2 {
		t.Errorf("expected 2 async deliveries, got %d", count)
	}
}

func TestFlushRemovesListeners(t *testing.T) {
	bus := event.NewBus()

	fired := false
	bus.Listen("report.created", func(interface{}) { fired = true })
	bus.Flush()
	bus.Fire("report.created", nil)

	if fired {
		t.Error("expected no delivery after Flush")
	}
}

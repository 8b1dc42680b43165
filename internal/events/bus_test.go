package events

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var mu sync.Mutex
	var got *Event
	done := make(chan struct{})

	bus.Subscribe(TypeNewBest, func(e *Event) {
		mu.Lock()
		got = e
		mu.Unlock()
		close(done)
	})

	bus.Emit(TypeNewBest, "run-1", map[string]any{"fitness": 0.9})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, TypeNewBest, got.Type)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	var calls int
	var mu sync.Mutex

	sub := bus.Subscribe(TypeTick, func(e *Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	bus.Unsubscribe(sub)
	bus.Emit(TypeTick, "run-1", nil)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls)
}

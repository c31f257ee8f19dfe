package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversToAllHandlers(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []interface{}

	handler := func(data interface{}) {
		mu.Lock()
		got = append(got, data)
		mu.Unlock()
		wg.Done()
	}
	bus.On("uploads.completed", handler)
	bus.On("uploads.completed", handler)

	bus.Emit("uploads.completed", "payload")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "payload", got[0])
}

func TestEmitWithoutHandlersIsNoOp(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Emit("nobody.listening", 42)
	})
}

func TestPanickingHandlerIsContained(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.On("boom", func(interface{}) {
		defer wg.Done()
		panic("handler bug")
	})

	assert.NotPanics(t, func() {
		bus.Emit("boom", nil)
	})
	wg.Wait()
}

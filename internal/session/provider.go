package session

import (
	"context"
	"sync"
)

// Update is one identity-provider push notification. An empty Email means no
// principal is signed in. A non-nil Err marks a provider-side failure, which
// the scope treats as anonymous rather than fatal.
type Update struct {
	Email string
	Err   error
}

// IdentityProvider delivers identity changes push-based. The returned channel
// is closed when ctx is cancelled; implementations must never block forever
// on a slow subscriber.
type IdentityProvider interface {
	Subscribe(ctx context.Context) <-chan Update
}

// Hub is an in-process IdentityProvider fed by the identity webhook route.
// Each subscriber gets its own buffered channel; publishing never blocks on a
// full subscriber, the update is dropped there instead (the provider will
// push again on the next change).
type Hub struct {
	mu   sync.Mutex
	subs map[chan Update]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Update]struct{})}
}

func (h *Hub) Subscribe(ctx context.Context) <-chan Update {
	ch := make(chan Update, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish fans an update out to every live subscriber.
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

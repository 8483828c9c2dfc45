package events

import "sync"

type Kind string

const (
	KindOrdersChanged        Kind = "orders_changed"
	KindConversationsChanged Kind = "conversations_changed"
	KindCatalogChanged       Kind = "catalog_changed"
	KindCustomersChanged     Kind = "customers_changed"
	KindReadinessChanged     Kind = "readiness_changed"
)

// Event signals that some slice of business state mutated. Payload carries the
// id of the entity that changed, when there is one.
type Event struct {
	Kind    Kind
	Payload string
}

// Bus is a synchronous observer registry. Handlers run inline on the
// publishing goroutine; there is no queue and no delivery guarantee beyond
// "called once per Publish". Subscribers must not Publish from a handler.
type Bus struct {
	mu       sync.RWMutex
	handlers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, fn)
	b.mu.Unlock()
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]func(Event), len(b.handlers))
	copy(hs, b.handlers)
	b.mu.RUnlock()

	for _, fn := range hs {
		fn(e)
	}
}

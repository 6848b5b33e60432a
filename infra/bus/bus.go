package bus

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/feedthread/app"
)

// Bus is an in-process publish/subscribe hub. Delivery is synchronous on the
// publisher's goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[app.Topic][]subscription
}

type subscription struct {
	id int
	h  app.Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[app.Topic][]subscription)}
}

// Subscribe registers h for topic and returns a func that removes it.
// Calling the returned func more than once is a no-op.
func (b *Bus) Subscribe(topic app.Topic, h app.Handler) func() {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic app.Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			b.subs[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish delivers e to every current subscriber of e.Topic.
func (b *Bus) Publish(e app.Event) {
	b.mu.RLock()
	handlers := make([]app.Handler, 0, len(b.subs[e.Topic]))
	for _, s := range b.subs[e.Topic] {
		handlers = append(handlers, s.h)
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug().Str("topic", string(e.Topic)).Msg("event published with no subscribers")
		return
	}
	for _, h := range handlers {
		h(e)
	}
}

// Subscribers returns how many handlers are registered for topic.
func (b *Bus) Subscribers(topic app.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

package services

import (
	"sync"
	"time"
)

// Change is published after a collection was committed.
type Change struct {
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

const subscriberBuffer = 16

// broadcaster fans changes out to subscribers. A slow subscriber misses
// events instead of blocking a mutation.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Change)}
}

func (b *broadcaster) subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Change, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

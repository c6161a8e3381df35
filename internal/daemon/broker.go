package daemon

import "sync"

// broker keeps the most recent events and fans new ones out to stream
// subscribers. A slow subscriber misses events rather than blocking polls.
type broker struct {
	mu     sync.Mutex
	limit  int
	lastID int64
	events []Event
	nextID int
	subs   map[int]chan Event
}

func newBroker(limit int) *broker {
	return &broker{limit: limit, subs: make(map[int]chan Event)}
}

// publish stamps ev with the next ID, stores it and delivers it.
func (b *broker) publish(ev Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	ev.ID = b.lastID
	b.events = append(b.events, ev)
	if len(b.events) > b.limit {
		b.events = b.events[len(b.events)-b.limit:]
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// subscribe registers a buffered channel. The returned func unregisters it.
func (b *broker) subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = ch
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// since returns retained events with an ID above after, oldest first.
func (b *broker) since(after int64) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Event, 0, len(b.events))
	for _, ev := range b.events {
		if ev.ID > after {
			out = append(out, ev)
		}
	}
	return out
}

func (b *broker) counts() (events, subscribers int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events), len(b.subs)
}

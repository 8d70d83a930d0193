package bus

import "sync"

// Topic identifies a category of data-changed notifications.
type Topic string

const (
	TopicPlan         Topic = "plan"
	TopicLogs         Topic = "logs"
	TopicMedications  Topic = "medications"
	TopicAppointments Topic = "appointments"
	TopicOverrides    Topic = "overrides"
	TopicContacts     Topic = "contacts"
)

// Bus is a small in-process pub/sub hub. Writers publish after a
// successful store mutation; views subscribe and re-derive day state
// when notified. Publish never blocks: a subscriber that has not
// drained its previous notification is skipped (re-derivation is
// idempotent, so a coalesced notification loses nothing).
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]chan Topic
}

func New() *Bus {
	return &Bus{subs: make(map[Topic]map[int]chan Topic)}
}

// Subscribe registers interest in the given topics and returns the
// notification channel plus an unsubscribe function.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Topic, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Topic, 1)
	id := b.nextID
	b.nextID++

	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[int]chan Topic)
		}
		b.subs[topic][id] = ch
	}

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, topic := range topics {
			delete(b.subs[topic], id)
		}
	}
	return ch, cancel
}

// Publish notifies every subscriber of the topic without blocking.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- topic:
		default:
		}
	}
}

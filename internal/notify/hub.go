package notify

import (
	"log"
	"sync"
)

type EventType string

const (
	EventNewLoan    EventType = "NEW_LOAN"
	EventLoanRepaid EventType = "LOAN_REPAID"
)

type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

const defaultQueueSize = 16

// Subscriber is a handle to one live listener. Events arrive on Events() in
// broadcast order until the hub drops the subscriber or Unsubscribe is called,
// after which the channel is closed.
type Subscriber struct {
	id        uint64
	ch        chan Event
	closeOnce sync.Once
}

func (s *Subscriber) Events() <-chan Event { return s.ch }

func (s *Subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Hub fans events out to the current subscriber set. Broadcast never blocks:
// each subscriber has a bounded queue, and one that falls behind is dropped
// rather than stalling the rest. The registry is never exposed.
type Hub struct {
	mu        sync.Mutex
	subs      map[uint64]*Subscriber
	nextID    uint64
	queueSize int
}

func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Hub{subs: make(map[uint64]*Subscriber), queueSize: queueSize}
}

func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	s := &Subscriber{id: h.nextID, ch: make(chan Event, h.queueSize)}
	h.subs[s.id] = s
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}
	h.mu.Lock()
	delete(h.subs, s.id)
	h.mu.Unlock()
	// Broadcast only sends to handles still in the map, so closing here
	// cannot race a send.
	s.close()
}

// Broadcast delivers e to every current subscriber. Delivery is best-effort:
// a full queue disconnects that subscriber, errors never reach the caller.
func (h *Hub) Broadcast(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.subs {
		select {
		case s.ch <- e:
		default:
			delete(h.subs, id)
			s.close()
			log.Printf("notify: dropped subscriber %d (queue full)", id)
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

package realtime

import (
	"sync"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

const TableOrders = "orders"

// Event is one row-level change notification. Order carries the new row state
// for insert/update events on the orders table; it is nil for deletes.
type Event struct {
	Table  string        `json:"table"`
	Op     Op            `json:"op"`
	RowID  string        `json:"row_id"`
	Order  *domain.Order `json:"order,omitempty"`
	Source string        `json:"source,omitempty"`
}

// Publisher is what producing code depends on; both Hub and Bridge satisfy it.
type Publisher interface {
	Publish(ev Event)
}

const subscriptionBuffer = 16

// Subscription is a cancellable handle on a stream of change events. Events
// arrive on C as discrete messages; the channel is closed by Close.
type Subscription struct {
	C chan Event

	hub   *Hub
	id    int
	table string
	rowID string

	once sync.Once
}

// Close releases the subscription and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
		close(s.C)
	})
}

// Hub fans row-level change events out to subscribers in process. Delivery is
// at-least-once from the subscriber's point of view: a slow consumer loses its
// oldest buffered event rather than blocking the publisher, and consumers are
// expected to re-fetch full state on every event anyway.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]*Subscription),
		logger: logger,
	}
}

// Subscribe registers for change events on table. An empty rowID matches every
// row; a non-empty rowID filters to that single row's events.
func (h *Hub) Subscribe(table, rowID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:     make(chan Event, subscriptionBuffer),
		hub:   h,
		id:    h.nextID,
		table: table,
		rowID: rowID,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if sub.table != ev.Table {
			continue
		}
		if sub.rowID != "" && sub.rowID != ev.RowID {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			// Drop the oldest buffered event to make room.
			select {
			case <-sub.C:
			default:
			}
			select {
			case sub.C <- ev:
			default:
			}
			h.logger.Warn("slow change-feed subscriber, dropped event",
				zap.String("table", ev.Table),
				zap.String("row_id", ev.RowID))
		}
	}
}

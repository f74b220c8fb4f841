package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
)

// Next returns the only status an order may move to from s. The kitchen moves
// orders strictly forward, one step at a time; a completed order has no
// further action.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusCompleted, true
	default:
		return "", false
	}
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

type Fulfillment string

const (
	FulfillmentDineIn   Fulfillment = "dine-in"
	FulfillmentTakeaway Fulfillment = "takeaway"
)

const (
	PaymentMethodCash = "cash"

	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

type Order struct {
	ID            string
	OrderNumber   string
	CustomerName  string
	Phone         string
	Fulfillment   Fulfillment
	TableNumber   *string
	PaymentMethod string
	PaymentStatus string
	Status        OrderStatus
	Subtotal      float64
	Tax           float64
	Total         float64
	CreatedAt     time.Time
}

// OrderLine captures one purchased item's name, quantity and price at order
// time. It is a snapshot, not a live reference: later menu edits must not
// alter historical orders.
type OrderLine struct {
	ID         uint
	OrderID    string
	MenuItemID string
	ItemName   string
	Quantity   int
	Price      float64
}

// Unresolved reports whether the order still needs kitchen attention.
func (o Order) Unresolved() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPreparing
}

// UrgentAt reports whether an unresolved order has been waiting longer than
// threshold, measured against wall-clock time at render.
func (o Order) UrgentAt(now time.Time, threshold time.Duration) bool {
	return o.Unresolved() && now.Sub(o.CreatedAt) > threshold
}

func NewOrderID() string {
	return uuid.NewString()
}

// NewLocalOrderID marks an order that exists only on this instance, with no
// backing row. Local orders never receive status updates.
func NewLocalOrderID() string {
	return "local-" + uuid.NewString()
}

func IsLocalOrderID(id string) bool {
	return strings.HasPrefix(id, "local-") || strings.HasPrefix(id, "demo-")
}

// NewOrderNumber generates a human-facing order number. Collisions are
// possible but tolerable for a single low-volume location.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d", 100000+rand.Intn(900000))
}

// ReviewDetails is what the review step carries over to checkout.
type ReviewDetails struct {
	Fulfillment Fulfillment `json:"fulfillment"`
	TableNumber string      `json:"table_number"`
}

// OrderSnapshot is the full confirmation-view copy of an order, kept in the
// customer session so the confirmation screen works even for orders that were
// never persisted.
type OrderSnapshot struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	CustomerName  string         `json:"customer_name"`
	Phone         string         `json:"phone"`
	Fulfillment   Fulfillment    `json:"fulfillment"`
	TableNumber   string         `json:"table_number,omitempty"`
	PaymentMethod string         `json:"payment_method"`
	Items         []SnapshotLine `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Total         float64        `json:"total"`
}

type SnapshotLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

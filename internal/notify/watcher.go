package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/realtime"
)

const (
	ReadyTitle = "Your order is ready!"
	ReadyTag   = "order-ready"
)

// Notification is the customer-facing alert raised when an order becomes
// ready. The tag lets the client deduplicate display, not delivery: repeated
// ready events re-notify.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

// Update is one observed status change for a watched order. Notification is
// non-nil exactly when the event reported the order ready.
type Update struct {
	Status       domain.OrderStatus `json:"status"`
	Notification *Notification      `json:"notification,omitempty"`
}

// Watcher follows a single order's row for the confirmation screen.
type Watcher struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewWatcher(hub *realtime.Hub, logger *zap.Logger) *Watcher {
	return &Watcher{hub: hub, logger: logger}
}

// Watch streams status updates for orderID until ctx is cancelled, releasing
// the subscription when the confirmation view goes away. Local-only orders
// have no backing row to observe; for those the returned channel is already
// closed.
func (w *Watcher) Watch(ctx context.Context, orderID string) <-chan Update {
	out := make(chan Update, 4)

	if domain.IsLocalOrderID(orderID) {
		close(out)
		return out
	}

	sub := w.hub.Subscribe(realtime.TableOrders, orderID)
	w.logger.Debug("watching order", zap.String("orderId", orderID))

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if ev.Op != realtime.OpUpdate || ev.Order == nil {
					continue
				}

				update := Update{Status: ev.Order.Status}
				if ev.Order.Status == domain.OrderStatusReady {
					update.Notification = &Notification{
						Title: ReadyTitle,
						Body:  fmt.Sprintf("Order %s is ready for pickup. Enjoy your meal!", ev.Order.OrderNumber),
						Tag:   ReadyTag,
					}
				}

				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

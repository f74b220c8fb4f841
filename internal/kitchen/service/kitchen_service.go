package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/realtime"
)

type OrderRepository interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type OrderItemRepository interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error)
}

type EventProducer interface {
	Publish(ctx context.Context, key string, event map[string]any)
}

// OrderView is one order as the kitchen dashboard shows it: the order, its
// line snapshots, and the render-time urgency flag.
type OrderView struct {
	domain.Order
	Items  []domain.OrderLine `json:"items"`
	Urgent bool               `json:"urgent"`
}

// StatusCounts back the dashboard's filter tab badges.
type StatusCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
}

type KitchenService struct {
	orders      OrderRepository
	items       OrderItemRepository
	changes     realtime.Publisher
	events      EventProducer
	logger      *zap.Logger
	strict      bool
	urgentAfter time.Duration
	now         func() time.Time
}

func NewKitchenService(
	orders OrderRepository,
	items OrderItemRepository,
	changes realtime.Publisher,
	events EventProducer,
	logger *zap.Logger,
	strict bool,
	urgentAfter time.Duration,
) *KitchenService {
	return &KitchenService{
		orders:      orders,
		items:       items,
		changes:     changes,
		events:      events,
		logger:      logger,
		strict:      strict,
		urgentAfter: urgentAfter,
		now:         time.Now,
	}
}

// FetchOrders returns every order, most recent first, with its lines joined in
// by order id. In degraded mode a read failure falls back to the demo orders
// so the dashboard stays usable.
func (s *KitchenService) FetchOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		if s.strict {
			return nil, err
		}
		s.logger.Warn("fetching orders failed, serving demo orders", zap.Error(err))
		return DemoOrders(s.now()), nil
	}

	views := make([]OrderView, 0, len(orders))
	now := s.now()
	for _, o := range orders {
		views = append(views, OrderView{
			Order:  o,
			Urgent: o.UrgentAt(now, s.urgentAfter),
		})
	}

	if len(orders) > 0 {
		ids := make([]string, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}
		lines, err := s.items.ListByOrderIDs(ctx, ids)
		if err != nil {
			// Orders without their lines still beat an empty dashboard.
			s.logger.Warn("fetching order items failed", zap.Error(err))
		}
		byOrder := make(map[string][]domain.OrderLine, len(orders))
		for _, line := range lines {
			byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
		}
		for i := range views {
			views[i].Items = byOrder[views[i].ID]
		}
	}

	return views, nil
}

func Counts(views []OrderView) StatusCounts {
	counts := StatusCounts{All: len(views)}
	for _, v := range views {
		switch v.Status {
		case domain.OrderStatusPending:
			counts.Pending++
		case domain.OrderStatusPreparing:
			counts.Preparing++
		case domain.OrderStatusReady:
			counts.Ready++
		case domain.OrderStatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// Transition moves one order a single step forward. Skips and backward moves
// are rejected. The write is optimistic in degraded mode: a failed UPDATE is
// logged and the attempted transition is reported as applied anyway, because
// the dashboard always reflects the staff action. Two staff sessions racing on
// the same order can both succeed, with the later write winning.
func (s *KitchenService) Transition(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	if !to.Valid() {
		return nil, apperrors.NewValidationError("unknown order status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, preparing, ready, completed",
		})
	}

	current, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if s.strict {
			return nil, err
		}
		// Demo or unreachable order: apply the transition locally only.
		s.logger.Warn("order lookup failed, applying transition optimistically",
			zap.String("orderId", orderID), zap.Error(err))
		current = &domain.Order{ID: orderID}
		if prev, ok := previousOf(to); ok {
			current.Status = prev
		}
	}

	if !current.Status.CanTransitionTo(to) {
		return nil, apperrors.NewConflictError("order cannot move from " + string(current.Status) + " to " + string(to))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, to); err != nil {
		if s.strict {
			return nil, err
		}
		s.logger.Warn("status update failed, keeping optimistic state",
			zap.String("orderId", orderID), zap.String("status", string(to)), zap.Error(err))
	}

	updated := *current
	updated.Status = to

	s.changes.Publish(realtime.Event{
		Table: realtime.TableOrders,
		Op:    realtime.OpUpdate,
		RowID: updated.ID,
		Order: &updated,
	})
	s.events.Publish(ctx, updated.ID, map[string]any{
		"type":         "order_status_changed",
		"order_id":     updated.ID,
		"order_number": updated.OrderNumber,
		"status":       string(to),
	})

	s.logger.Info("order status updated",
		zap.String("orderId", updated.ID),
		zap.String("status", string(to)))

	return &updated, nil
}

func previousOf(status domain.OrderStatus) (domain.OrderStatus, bool) {
	for _, from := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusPreparing,
		domain.OrderStatusReady,
	} {
		if next, _ := from.Next(); next == status {
			return from, true
		}
	}
	return "", false
}

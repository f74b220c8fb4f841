package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/cart"
	"radhecafe/internal/domain"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/realtime"
	"radhecafe/internal/session"
)

type CheckoutService interface {
	SaveOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error
}

type EventProducer interface {
	Publish(ctx context.Context, key string, event map[string]any)
}

type PlaceOrderRequest struct {
	SessionID     string
	Name          string
	Phone         string
	PaymentMethod string
}

type PlaceOrderUseCase struct {
	carts    *cart.Registry
	sessions session.Store
	checkout CheckoutService
	changes  realtime.Publisher
	events   EventProducer
	logger   *zap.Logger
	strict   bool
	now      func() time.Time
}

func NewPlaceOrderUseCase(
	carts *cart.Registry,
	sessions session.Store,
	checkout CheckoutService,
	changes realtime.Publisher,
	events EventProducer,
	logger *zap.Logger,
	strict bool,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		carts:    carts,
		sessions: sessions,
		checkout: checkout,
		changes:  changes,
		events:   events,
		logger:   logger,
		strict:   strict,
		now:      time.Now,
	}
}

// Place validates the customer details, persists the order with its line
// snapshots, and returns the confirmation snapshot. When the write fails in
// degraded mode the checkout still completes with a local-only order, so a
// backend outage never blocks a customer; either way the cart is cleared and
// the review-step details are discarded.
func (uc *PlaceOrderUseCase) Place(ctx context.Context, req PlaceOrderRequest) (*domain.OrderSnapshot, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("please enter your name", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	phone := strings.TrimSpace(req.Phone)
	if len(phone) < 10 {
		return nil, apperrors.NewValidationError("please enter a valid phone number", apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone must be at least 10 characters",
		})
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = domain.PaymentMethodCash
	}
	if payment != domain.PaymentMethodCash {
		return nil, apperrors.NewValidationError("unsupported payment method", apperrors.ValidationDetail{
			Field:   "payment_method",
			Message: "only cash is offered",
		})
	}

	c := uc.carts.Get(req.SessionID)
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cart",
			Message: "add at least one item before checking out",
		})
	}

	// Fulfillment mode and table number carried over from the review step.
	details := domain.ReviewDetails{Fulfillment: domain.FulfillmentDineIn}
	if err := uc.sessions.Load(ctx, req.SessionID, session.KeyOrderDetails, &details); err != nil && err != session.ErrNotFound {
		uc.logger.Warn("loading review details", zap.Error(err))
	}

	subtotal := c.Subtotal()
	order := &domain.Order{
		ID:            domain.NewOrderID(),
		OrderNumber:   domain.NewOrderNumber(),
		CustomerName:  name,
		Phone:         phone,
		Fulfillment:   details.Fulfillment,
		PaymentMethod: payment,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Status:        domain.OrderStatusPending,
		Subtotal:      subtotal,
		Tax:           0,
		Total:         subtotal,
		CreatedAt:     uc.now(),
	}
	if details.Fulfillment == domain.FulfillmentDineIn && details.TableNumber != "" {
		tn := details.TableNumber
		order.TableNumber = &tn
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			OrderID:    order.ID,
			MenuItemID: line.Item.ID,
			ItemName:   line.Item.Name,
			Quantity:   line.Quantity,
			Price:      line.Item.Price,
		})
	}

	if err := uc.checkout.SaveOrder(ctx, order, orderLines); err != nil {
		if uc.strict {
			return nil, apperrors.NewInternalError("placing order", err)
		}
		// Degraded policy: checkout must never block. The order gets a
		// local-only id and only a session-side receipt exists.
		uc.logger.Warn("order not persisted, continuing with local order",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
		order.ID = domain.NewLocalOrderID()
	} else {
		uc.changes.Publish(realtime.Event{
			Table: realtime.TableOrders,
			Op:    realtime.OpInsert,
			RowID: order.ID,
			Order: order,
		})
		uc.events.Publish(ctx, order.ID, map[string]any{
			"type":         "order_created",
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"total":        order.Total,
		})
	}

	snapshot := buildSnapshot(order, orderLines)

	if err := uc.sessions.Save(ctx, req.SessionID, session.KeyLastOrder, snapshot); err != nil {
		uc.logger.Warn("saving order snapshot to session", zap.Error(err))
	}
	if err := uc.sessions.Delete(ctx, req.SessionID, session.KeyOrderDetails); err != nil {
		uc.logger.Warn("clearing review details", zap.Error(err))
	}
	c.Clear()

	uc.logger.Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Bool("local", domain.IsLocalOrderID(order.ID)))

	return snapshot, nil
}

func buildSnapshot(order *domain.Order, lines []domain.OrderLine) *domain.OrderSnapshot {
	snap := &domain.OrderSnapshot{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		Phone:         order.Phone,
		Fulfillment:   order.Fulfillment,
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
	}
	if order.TableNumber != nil {
		snap.TableNumber = *order.TableNumber
	}
	for _, line := range lines {
		snap.Items = append(snap.Items, domain.SnapshotLine{
			Name:     line.ItemName,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	return snap
}

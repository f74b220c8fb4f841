package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/cart"
	"radhecafe/internal/domain"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/realtime"
	"radhecafe/internal/session"
)

// Mock implementations

type mockCheckoutService struct {
	SaveOrderFunc func(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error
	calls         int
}

func (m *mockCheckoutService) SaveOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	m.calls++
	if m.SaveOrderFunc == nil {
		return nil
	}
	return m.SaveOrderFunc(ctx, order, lines)
}

type mockPublisher struct {
	events []realtime.Event
}

func (m *mockPublisher) Publish(ev realtime.Event) {
	m.events = append(m.events, ev)
}

type mockProducer struct {
	events []map[string]any
}

func (m *mockProducer) Publish(_ context.Context, _ string, event map[string]any) {
	m.events = append(m.events, event)
}

type testDeps struct {
	carts    *cart.Registry
	sessions *session.MemoryStore
	checkout *mockCheckoutService
	changes  *mockPublisher
	producer *mockProducer
}

func newTestUseCase(t *testing.T, strict bool) (*PlaceOrderUseCase, *testDeps) {
	t.Helper()
	deps := &testDeps{
		carts:    cart.NewRegistry(),
		sessions: session.NewMemoryStore(time.Hour),
		checkout: &mockCheckoutService{},
		changes:  &mockPublisher{},
		producer: &mockProducer{},
	}
	uc := NewPlaceOrderUseCase(deps.carts, deps.sessions, deps.checkout, deps.changes, deps.producer, zap.NewNop(), strict)
	return uc, deps
}

func fillCart(deps *testDeps, sessionID string) {
	c := deps.carts.Get(sessionID)
	chai := domain.MenuItem{ID: "1", Name: "Masala Chai", Price: 30}
	samosa := domain.MenuItem{ID: "4", Name: "Samosa", Price: 20}
	c.AddItem(chai)
	c.AddItem(chai)
	c.AddItem(samosa)
}

func TestPlace_EmptyNameNeverWrites(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")

	_, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "   ",
		Phone:     "9876543210",
	})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if deps.checkout.calls != 0 {
		t.Errorf("expected no backend write, got %d", deps.checkout.calls)
	}
	if deps.carts.Get("s-1").Empty() {
		t.Error("cart must be untouched after a validation failure")
	}
}

func TestPlace_ShortPhoneRejected(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")

	_, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "Rahul Sharma",
		Phone:     "12345",
	})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if deps.checkout.calls != 0 {
		t.Errorf("expected no backend write, got %d", deps.checkout.calls)
	}
}

func TestPlace_EmptyCartRejected(t *testing.T) {
	uc, deps := newTestUseCase(t, false)

	_, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "Rahul Sharma",
		Phone:     "9876543210",
	})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if deps.checkout.calls != 0 {
		t.Errorf("expected no backend write, got %d", deps.checkout.calls)
	}
}

func TestPlace_Success(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")

	ctx := context.Background()
	deps.sessions.Save(ctx, "s-1", session.KeyOrderDetails, domain.ReviewDetails{
		Fulfillment: domain.FulfillmentDineIn,
		TableNumber: "5",
	})

	snap, err := uc.Place(ctx, PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "  Rahul Sharma ",
		Phone:     "9876543210",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(snap.OrderNumber, "ORD-") {
		t.Errorf("bad order number %q", snap.OrderNumber)
	}
	if domain.IsLocalOrderID(snap.ID) {
		t.Errorf("persisted order must not have a local id, got %s", snap.ID)
	}
	if snap.CustomerName != "Rahul Sharma" {
		t.Errorf("name not trimmed: %q", snap.CustomerName)
	}
	if snap.Subtotal != 80 || snap.Tax != 0 || snap.Total != 80 {
		t.Errorf("bad totals: subtotal=%v tax=%v total=%v", snap.Subtotal, snap.Tax, snap.Total)
	}
	if snap.TableNumber != "5" || snap.Fulfillment != domain.FulfillmentDineIn {
		t.Errorf("review details not carried over: %+v", snap)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snap.Items))
	}

	// Cart cleared, review details discarded, snapshot stored.
	if !deps.carts.Get("s-1").Empty() {
		t.Error("cart must be empty after submission")
	}
	var details domain.ReviewDetails
	if err := deps.sessions.Load(ctx, "s-1", session.KeyOrderDetails, &details); err != session.ErrNotFound {
		t.Errorf("review details must be discarded, got err=%v", err)
	}
	var stored domain.OrderSnapshot
	if err := deps.sessions.Load(ctx, "s-1", session.KeyLastOrder, &stored); err != nil {
		t.Fatalf("snapshot not stored: %v", err)
	}
	if stored.OrderNumber != snap.OrderNumber {
		t.Errorf("stored snapshot mismatch: %q vs %q", stored.OrderNumber, snap.OrderNumber)
	}

	// Change event and order event published.
	if len(deps.changes.events) != 1 || deps.changes.events[0].Op != realtime.OpInsert {
		t.Errorf("expected one insert change event, got %+v", deps.changes.events)
	}
	if len(deps.producer.events) != 1 || deps.producer.events[0]["type"] != "order_created" {
		t.Errorf("expected one order_created event, got %+v", deps.producer.events)
	}
}

func TestPlace_BackendFailureDegraded(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")
	deps.checkout.SaveOrderFunc = func(context.Context, *domain.Order, []domain.OrderLine) error {
		return errors.New("connection refused")
	}

	snap, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "Priya Patel",
		Phone:     "8765432109",
	})
	if err != nil {
		t.Fatalf("degraded mode must not surface backend errors, got %v", err)
	}

	if !strings.HasPrefix(snap.ID, "local-") {
		t.Errorf("fallback order id must be marked local, got %s", snap.ID)
	}
	if !deps.carts.Get("s-1").Empty() {
		t.Error("cart must be empty even when the backend write failed")
	}
	if snap.Total != 80 {
		t.Errorf("totals must survive the fallback, got %v", snap.Total)
	}
	if len(deps.changes.events) != 0 {
		t.Errorf("no change event for a local-only order, got %+v", deps.changes.events)
	}
	var stored domain.OrderSnapshot
	if err := deps.sessions.Load(context.Background(), "s-1", session.KeyLastOrder, &stored); err != nil {
		t.Fatalf("receipt must still be stored: %v", err)
	}
}

func TestPlace_BackendFailureStrict(t *testing.T) {
	uc, deps := newTestUseCase(t, true)
	fillCart(deps, "s-1")
	deps.checkout.SaveOrderFunc = func(context.Context, *domain.Order, []domain.OrderLine) error {
		return errors.New("connection refused")
	}

	_, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "Priya Patel",
		Phone:     "8765432109",
	})
	if err == nil {
		t.Fatal("strict mode must surface backend errors")
	}
	var ie *apperrors.InternalError
	if !errors.As(err, &ie) {
		t.Errorf("expected InternalError, got %T", err)
	}
}

func TestPlace_UnsupportedPaymentMethod(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")

	_, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID:     "s-1",
		Name:          "Rahul Sharma",
		Phone:         "9876543210",
		PaymentMethod: "card",
	})
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPlace_DefaultsWithoutReviewStep(t *testing.T) {
	uc, deps := newTestUseCase(t, false)
	fillCart(deps, "s-1")

	snap, err := uc.Place(context.Background(), PlaceOrderRequest{
		SessionID: "s-1",
		Name:      "Amit Verma",
		Phone:     "7654321098",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Fulfillment != domain.FulfillmentDineIn {
		t.Errorf("default fulfillment must be dine-in, got %s", snap.Fulfillment)
	}
	if snap.TableNumber != "" {
		t.Errorf("no table number without review step, got %q", snap.TableNumber)
	}
	if snap.PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("default payment method must be cash, got %s", snap.PaymentMethod)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
	apperrors "radhecafe/internal/errors"
)

// Mock implementations

type mockOrderRepository struct {
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Order, error)
	ListByDateRangeFunc func(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	UpdateFunc          func(ctx context.Context, id string, status string) error
	updates             []string
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return m.ListByDateRangeFunc(ctx, from, to)
}

func (m *mockOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status string) error {
	m.updates = append(m.updates, status)
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, id, status)
}

type mockItemRepository struct {
	ListByOrderIDsFunc func(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error)
}

func (m *mockItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error) {
	if m.ListByOrderIDsFunc == nil {
		return nil, nil
	}
	return m.ListByOrderIDsFunc(ctx, orderIDs)
}

// Tests

func TestDaily_CoversTheCalendarDay(t *testing.T) {
	var gotFrom, gotTo time.Time
	orders := &mockOrderRepository{
		ListByDateRangeFunc: func(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)
	date := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	report, err := svc.Daily(context.Background(), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !gotFrom.Equal(wantFrom) || !gotTo.Equal(wantFrom.Add(24*time.Hour)) {
		t.Errorf("unexpected range: %v to %v", gotFrom, gotTo)
	}
	if report.Date != "2026-09-01" {
		t.Errorf("unexpected report date: %s", report.Date)
	}
	if report.Summary.TotalOrders != 0 || len(report.Orders) != 0 {
		t.Errorf("empty day must produce an empty report: %+v", report)
	}
}

func TestDaily_SummarizesAndJoinsItems(t *testing.T) {
	orders := &mockOrderRepository{
		ListByDateRangeFunc: func(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
			return []domain.Order{
				{ID: "o-1", Total: 210, PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusPaid},
				{ID: "o-2", Total: 320, PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusUnpaid},
				{ID: "o-3", Total: 190, PaymentMethod: "upi", PaymentStatus: domain.PaymentStatusUnpaid},
			}, nil
		},
	}
	items := &mockItemRepository{
		ListByOrderIDsFunc: func(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error) {
			if len(orderIDs) != 3 {
				t.Errorf("expected 3 order ids, got %v", orderIDs)
			}
			return []domain.OrderLine{
				{OrderID: "o-1", ItemName: "Masala Chai", Quantity: 2, Price: 30},
				{OrderID: "o-1", ItemName: "Samosa", Quantity: 1, Price: 20},
				{OrderID: "o-3", ItemName: "Kulfi", Quantity: 1, Price: 60},
			}, nil
		},
	}

	svc := NewReportService(orders, items, zap.NewNop(), false)
	report, err := svc.Daily(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := report.Summary
	if sum.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", sum.TotalOrders)
	}
	if sum.TotalRevenue != 720 {
		t.Errorf("expected revenue 720, got %v", sum.TotalRevenue)
	}
	if sum.CashOrders != 2 || sum.OnlineOrders != 1 {
		t.Errorf("unexpected payment split: cash %d online %d", sum.CashOrders, sum.OnlineOrders)
	}
	// Online orders count as paid even when never toggled.
	if sum.PaidOrders != 2 {
		t.Errorf("expected 2 paid orders, got %d", sum.PaidOrders)
	}

	if len(report.Orders[0].Items) != 2 || len(report.Orders[1].Items) != 0 || len(report.Orders[2].Items) != 1 {
		t.Errorf("items misjoined: %+v", report.Orders)
	}
}

func TestDaily_ItemFailureStillReturnsOrders(t *testing.T) {
	orders := &mockOrderRepository{
		ListByDateRangeFunc: func(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
			return []domain.Order{{ID: "o-1", Total: 80, PaymentMethod: domain.PaymentMethodCash}}, nil
		},
	}
	items := &mockItemRepository{
		ListByOrderIDsFunc: func(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewReportService(orders, items, zap.NewNop(), false)
	report, err := svc.Daily(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Summary.TotalOrders != 1 || len(report.Orders[0].Items) != 0 {
		t.Errorf("expected order without items, got %+v", report.Orders)
	}
}

func TestDaily_OrderFailureSurfaces(t *testing.T) {
	orders := &mockOrderRepository{
		ListByDateRangeFunc: func(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)
	if _, err := svc.Daily(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when orders cannot be read")
	}
}

func TestTogglePayment_FlipsCashStatus(t *testing.T) {
	order := &domain.Order{ID: "o-1", PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusUnpaid}
	orders := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)

	status, err := svc.TogglePayment(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.PaymentStatusPaid {
		t.Errorf("expected paid, got %s", status)
	}

	order.PaymentStatus = domain.PaymentStatusPaid
	status, err = svc.TogglePayment(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.PaymentStatusUnpaid {
		t.Errorf("expected unpaid, got %s", status)
	}

	if len(orders.updates) != 2 || orders.updates[0] != "paid" || orders.updates[1] != "unpaid" {
		t.Errorf("unexpected writes: %v", orders.updates)
	}
}

func TestTogglePayment_RejectsOnlineOrders(t *testing.T) {
	orders := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: "o-1", PaymentMethod: "upi", PaymentStatus: domain.PaymentStatusUnpaid}, nil
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)
	_, err := svc.TogglePayment(context.Background(), "o-1")
	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected conflict error, got %v", err)
	}
	if len(orders.updates) != 0 {
		t.Error("online order must not be written")
	}
}

func TestTogglePayment_DegradedReportsOptimistically(t *testing.T) {
	orders := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: "o-1", PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusUnpaid}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, status string) error {
			return errors.New("connection refused")
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)
	status, err := svc.TogglePayment(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.PaymentStatusPaid {
		t.Errorf("expected optimistic paid, got %s", status)
	}
}

func TestTogglePayment_StrictSurfacesWriteFailure(t *testing.T) {
	orders := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: "o-1", PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusUnpaid}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, status string) error {
			return errors.New("connection refused")
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), true)
	if _, err := svc.TogglePayment(context.Background(), "o-1"); err == nil {
		t.Fatal("expected error in strict mode")
	}
}

func TestTogglePayment_NotFound(t *testing.T) {
	orders := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order o-9 not found")
		},
	}

	svc := NewReportService(orders, &mockItemRepository{}, zap.NewNop(), false)
	_, err := svc.TogglePayment(context.Background(), "o-9")
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected not found error, got %v", err)
	}
}

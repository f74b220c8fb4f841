package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/order/repository"
	"radhecafe/internal/testutil"
)

type failingItemRepo struct{}

func (failingItemRepo) Insert(ctx context.Context, tx *sql.Tx, line domain.OrderLine) error {
	return errors.New("duplicate entry")
}

func newOrder(number string) *domain.Order {
	return &domain.Order{
		ID:            domain.NewOrderID(),
		OrderNumber:   number,
		CustomerName:  "Rahul Sharma",
		Phone:         "9876543210",
		Fulfillment:   domain.FulfillmentDineIn,
		PaymentMethod: domain.PaymentMethodCash,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Status:        domain.OrderStatusPending,
		Subtotal:      80,
		Total:         80,
	}
}

// Integration Tests

func TestCheckoutService_SaveOrder_PersistsOrderWithLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLOrderItemRepository(db)
	svc := NewCheckoutService(db, orderRepo, itemRepo, zap.NewNop())

	o := newOrder("ORD-200001")
	lines := []domain.OrderLine{
		{OrderID: o.ID, MenuItemID: "1", ItemName: "Masala Chai", Quantity: 2, Price: 30},
		{OrderID: o.ID, MenuItemID: "4", ItemName: "Samosa", Quantity: 1, Price: 20},
	}

	require.NoError(t, svc.SaveOrder(context.Background(), o, lines))

	saved, err := orderRepo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-200001", saved.OrderNumber)

	savedLines, err := itemRepo.ListByOrderIDs(context.Background(), []string{o.ID})
	require.NoError(t, err)
	assert.Len(t, savedLines, 2)
}

func TestCheckoutService_SaveOrder_RollsBackOnLineFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := repository.NewMySQLOrderRepository(db)
	svc := NewCheckoutService(db, orderRepo, failingItemRepo{}, zap.NewNop())

	o := newOrder("ORD-200002")
	lines := []domain.OrderLine{
		{OrderID: o.ID, MenuItemID: "1", ItemName: "Masala Chai", Quantity: 1, Price: 30},
	}

	err := svc.SaveOrder(context.Background(), o, lines)
	require.Error(t, err)

	// The order must not have landed without its lines.
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders WHERE id = ?`, o.ID).Scan(&count))
	assert.Equal(t, 0, count)
}

package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, o *domain.Order) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, line domain.OrderLine) error
}

// CheckoutService persists an order and its line snapshots atomically: either
// the order lands with all its lines or nothing is written.
type CheckoutService struct {
	db        TransactionManager
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	logger    *zap.Logger
}

func NewCheckoutService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
	}
}

func (s *CheckoutService) SaveOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	if err := s.orderRepo.Insert(txCtx, tx, order); err != nil {
		s.logger.Error("failed to insert order", zap.String("orderId", order.ID), zap.Error(err))
		return err
	}

	for _, line := range lines {
		line.OrderID = order.ID
		if err := s.itemRepo.Insert(txCtx, tx, line); err != nil {
			s.logger.Error("failed to insert order item",
				zap.String("orderId", order.ID),
				zap.String("itemName", line.ItemName),
				zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order", zap.String("orderId", order.ID), zap.Error(err))
		return err
	}

	s.logger.Info("order persisted",
		zap.String("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("lineCount", len(lines)),
		zap.Float64("total", order.Total))

	return nil
}

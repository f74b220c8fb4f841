package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status string) error
}

type OrderItemRepository interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error)
}

// ReportRow is one order on the reports table, with its lines joined in.
type ReportRow struct {
	domain.Order
	Items []domain.OrderLine `json:"items"`
}

// Summary holds the day's headline numbers. Orders paid online count as paid
// regardless of the stored payment status; the cash toggle only tracks cash.
type Summary struct {
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	CashOrders   int     `json:"cashOrders"`
	OnlineOrders int     `json:"onlineOrders"`
	PaidOrders   int     `json:"paidOrders"`
}

type DailyReport struct {
	Date    string      `json:"date"`
	Summary Summary     `json:"summary"`
	Orders  []ReportRow `json:"orders"`
}

type ReportService struct {
	orders OrderRepository
	items  OrderItemRepository
	logger *zap.Logger
	strict bool
}

func NewReportService(orders OrderRepository, items OrderItemRepository, logger *zap.Logger, strict bool) *ReportService {
	return &ReportService{
		orders: orders,
		items:  items,
		logger: logger,
		strict: strict,
	}
}

// Daily reports on orders created on the given calendar day, in the server's
// location, most recent first.
func (s *ReportService) Daily(ctx context.Context, date time.Time) (*DailyReport, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.Add(24 * time.Hour)

	orders, err := s.orders.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load orders for report", zap.Time("date", from), zap.Error(err))
		return nil, errors.NewInternalError("failed to load report", err)
	}

	rows := make([]ReportRow, 0, len(orders))
	if len(orders) > 0 {
		ids := make([]string, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}

		lines, err := s.items.ListByOrderIDs(ctx, ids)
		if err != nil {
			// The table still renders without line detail.
			s.logger.Warn("failed to load order items for report", zap.Error(err))
		}

		byOrder := make(map[string][]domain.OrderLine)
		for _, line := range lines {
			byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
		}
		for _, o := range orders {
			rows = append(rows, ReportRow{Order: o, Items: byOrder[o.ID]})
		}
	}

	report := &DailyReport{
		Date:    from.Format("2006-01-02"),
		Summary: summarize(rows),
		Orders:  rows,
	}
	return report, nil
}

func summarize(rows []ReportRow) Summary {
	var sum Summary
	sum.TotalOrders = len(rows)
	for _, row := range rows {
		sum.TotalRevenue += row.Total
		if row.PaymentMethod == domain.PaymentMethodCash {
			sum.CashOrders++
			if row.PaymentStatus == domain.PaymentStatusPaid {
				sum.PaidOrders++
			}
		} else {
			sum.OnlineOrders++
			sum.PaidOrders++
		}
	}
	return sum
}

// TogglePayment flips a cash order between paid and unpaid and returns the new
// status. Online payments settle at payment time and cannot be toggled. In
// degraded mode a failed write still reports the flipped status so the desk
// can keep marking payments while storage is down.
func (s *ReportService) TogglePayment(ctx context.Context, orderID string) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return "", err
		}
		return "", errors.NewInternalError("failed to load order", err)
	}

	if order.PaymentMethod != domain.PaymentMethodCash {
		return "", errors.NewConflictError("only cash payments can be toggled")
	}

	next := domain.PaymentStatusPaid
	if order.PaymentStatus == domain.PaymentStatusPaid {
		next = domain.PaymentStatusUnpaid
	}

	if err := s.orders.UpdatePaymentStatus(ctx, orderID, next); err != nil {
		if s.strict {
			s.logger.Error("failed to update payment status",
				zap.String("orderId", orderID), zap.Error(err))
			return "", errors.NewInternalError("failed to update payment status", err)
		}
		s.logger.Warn("payment status write failed, reporting optimistically",
			zap.String("orderId", orderID), zap.String("paymentStatus", next), zap.Error(err))
	}

	s.logger.Info("payment status toggled",
		zap.String("orderId", orderID), zap.String("paymentStatus", next))
	return next, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"radhecafe/internal/domain"
	"radhecafe/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, order_number, customer_name, phone, fulfillment, table_number,
	       payment_method, payment_status, status, subtotal, tax, total, created_at`

func scanOrder(scan func(...any) error) (domain.Order, error) {
	var o domain.Order
	err := scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Phone, &o.Fulfillment, &o.TableNumber,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.Subtotal, &o.Tax, &o.Total, &o.CreatedAt,
	)
	return o, err
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &o, nil
}

// ListAll returns every order, most recent first.
func (r *MySQLOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListByDateRange returns orders created in [from, to), most recent first.
func (r *MySQLOrderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying orders by date range: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_name, phone, fulfillment, table_number,
		                    payment_method, payment_status, status, subtotal, tax, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		o.ID, o.OrderNumber, o.CustomerName, o.Phone, o.Fulfillment, o.TableNumber,
		o.PaymentMethod, o.PaymentStatus, o.Status, o.Subtotal, o.Tax, o.Total,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// UpdateStatus writes the status column only; status is the single field that
// ever changes after an order is created.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE orders SET payment_status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

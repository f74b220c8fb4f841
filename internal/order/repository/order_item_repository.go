package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"radhecafe/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// Insert writes one order line snapshot. Lines are immutable after creation;
// there is deliberately no update method here.
func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, line domain.OrderLine) error {
	query := `
		INSERT INTO order_items (order_id, menu_item_id, item_name, quantity, price)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		line.OrderID, line.MenuItemID, line.ItemName, line.Quantity, line.Price,
	)
	if err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}
	return nil
}

// ListByOrderIDs fetches the lines for a set of orders in one query; callers
// join them to their orders by order id.
func (r *MySQLOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]domain.OrderLine, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(orderIDs)), ", ")
	query := fmt.Sprintf(`
		SELECT id, order_id, menu_item_id, item_name, quantity, price
		FROM order_items
		WHERE order_id IN (%s)
		ORDER BY id
	`, placeholders)

	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.ItemName, &line.Quantity, &line.Price)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return lines, nil
}

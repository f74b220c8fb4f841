package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"radhecafe/internal/domain"
	"radhecafe/internal/errors"
)

// BoolField names the toggleable menu item flags. SetFlag interpolates the
// column name into SQL, so only these two values are accepted.
type BoolField string

const (
	FieldAvailable    BoolField = "is_available"
	FieldDailySpecial BoolField = "is_daily_special"
)

type MySQLMenuItemRepository struct {
	db *sql.DB
}

func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{db: db}
}

const menuItemColumns = `id, name, description, price, category_id, is_available, is_daily_special, created_at`

func (r *MySQLMenuItemRepository) scanItems(rows *sql.Rows) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price,
			&item.CategoryID, &item.IsAvailable, &item.IsDailySpecial, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}
	return items, nil
}

// List returns every item, including unavailable ones, for the admin screen.
func (r *MySQLMenuItemRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items ORDER BY created_at`, menuItemColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

// ListAvailable returns the items customers can order right now.
func (r *MySQLMenuItemRepository) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items WHERE is_available = TRUE ORDER BY created_at`, menuItemColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying available menu items: %w", err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

func (r *MySQLMenuItemRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items WHERE id = ?`, menuItemColumns)

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.CategoryID, &item.IsAvailable, &item.IsDailySpecial, &item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLMenuItemRepository) Insert(ctx context.Context, item *domain.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO menu_items (id, name, description, price, category_id, is_available, is_daily_special)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.Price,
		item.CategoryID, item.IsAvailable, item.IsDailySpecial,
	)
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}
	return nil
}

func (r *MySQLMenuItemRepository) Update(ctx context.Context, item domain.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = ?, description = ?, price = ?, category_id = ?, is_available = ?, is_daily_special = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Price, item.CategoryID,
		item.IsAvailable, item.IsDailySpecial, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", item.ID))
	}

	return nil
}

// SetFlag flips one of the two boolean columns in a single-field update.
func (r *MySQLMenuItemRepository) SetFlag(ctx context.Context, id string, field BoolField, value bool) error {
	if field != FieldAvailable && field != FieldDailySpecial {
		return fmt.Errorf("unknown menu item flag %q", field)
	}

	query := fmt.Sprintf(`UPDATE menu_items SET %s = ? WHERE id = ?`, field)

	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating menu item flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id))
	}

	return nil
}

func (r *MySQLMenuItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM menu_items WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id))
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radhecafe/internal/domain"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/testutil"
)

// Unit Tests

func TestNewMySQLMenuItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMenuItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMenuItemRepository_SetFlag_RejectsUnknownColumn(t *testing.T) {
	repo := NewMySQLMenuItemRepository(&sql.DB{})

	err := repo.SetFlag(context.Background(), "i-1", BoolField("price"), true)
	assert.Error(t, err)
}

// Integration Tests

func TestMenuItemRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	item := &domain.MenuItem{
		Name:           "Masala Chai",
		Description:    "Rich aromatic tea with traditional Indian spices",
		Price:          30,
		IsAvailable:    true,
		IsDailySpecial: false,
	}
	require.NoError(t, repo.Insert(ctx, item))
	require.NotEmpty(t, item.ID)

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Masala Chai", got.Name)
	assert.Equal(t, 30.0, got.Price)
	assert.Nil(t, got.CategoryID)
	assert.True(t, got.IsAvailable)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMenuItemRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMenuItemRepository_ListAvailable_FiltersHiddenItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	available := &domain.MenuItem{Name: "Samosa", Price: 20, IsAvailable: true}
	hidden := &domain.MenuItem{Name: "Kulfi", Price: 60, IsAvailable: false}
	require.NoError(t, repo.Insert(ctx, available))
	require.NoError(t, repo.Insert(ctx, hidden))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Samosa", visible[0].Name)
}

func TestMenuItemRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	item := &domain.MenuItem{Name: "Cold Cofee", Price: 65, IsAvailable: true}
	require.NoError(t, repo.Insert(ctx, item))

	item.Name = "Cold Coffee"
	item.Price = 70
	item.IsDailySpecial = true
	require.NoError(t, repo.Update(ctx, *item))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cold Coffee", got.Name)
	assert.Equal(t, 70.0, got.Price)
	assert.True(t, got.IsDailySpecial)
}

func TestMenuItemRepository_SetFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	item := &domain.MenuItem{Name: "Veg Biryani", Price: 140, IsAvailable: true}
	require.NoError(t, repo.Insert(ctx, item))

	require.NoError(t, repo.SetFlag(ctx, item.ID, FieldDailySpecial, true))
	require.NoError(t, repo.SetFlag(ctx, item.ID, FieldAvailable, false))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDailySpecial)
	assert.False(t, got.IsAvailable)
}

func TestMenuItemRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMenuItemRepository(db)
	ctx := context.Background()

	item := &domain.MenuItem{Name: "Vada Pav", Price: 30, IsAvailable: true}
	require.NoError(t, repo.Insert(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.FindByID(ctx, item.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, item.ID)
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/errors"
	"radhecafe/internal/menu/repository"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Insert(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c domain.Category) error
	Delete(ctx context.Context, id string) error
}

type MenuItemRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Insert(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item domain.MenuItem) error
	SetFlag(ctx context.Context, id string, field repository.BoolField, value bool) error
	Delete(ctx context.Context, id string) error
}

// ItemFlag names the two toggles exposed on the manage screen.
type ItemFlag string

const (
	FlagAvailable    ItemFlag = "available"
	FlagDailySpecial ItemFlag = "daily_special"
)

// MenuView bundles what both the customer menu and the manage screen render.
type MenuView struct {
	Categories []domain.Category `json:"categories"`
	Items      []domain.MenuItem `json:"items"`
}

type ItemInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	CategoryID     string  `json:"categoryId"`
	IsAvailable    bool    `json:"isAvailable"`
	IsDailySpecial bool    `json:"isDailySpecial"`
}

type MenuService struct {
	categories CategoryRepository
	items      MenuItemRepository
	logger     *zap.Logger
	strict     bool
}

func NewMenuService(categories CategoryRepository, items MenuItemRepository, logger *zap.Logger, strict bool) *MenuService {
	return &MenuService{
		categories: categories,
		items:      items,
		logger:     logger,
		strict:     strict,
	}
}

// Menu returns what customers can browse right now. In degraded mode a failed
// or empty read falls back to the built-in demo menu, each list independently,
// so the storefront never renders blank.
func (s *MenuService) Menu(ctx context.Context) (*MenuView, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		if s.strict {
			return nil, errors.NewInternalError("failed to load categories", err)
		}
		s.logger.Warn("falling back to demo categories", zap.Error(err))
		categories = nil
	}
	if len(categories) == 0 && !s.strict {
		categories = DemoCategories()
	}

	items, err := s.items.ListAvailable(ctx)
	if err != nil {
		if s.strict {
			return nil, errors.NewInternalError("failed to load menu items", err)
		}
		s.logger.Warn("falling back to demo items", zap.Error(err))
		items = nil
	}
	if len(items) == 0 && !s.strict {
		items = DemoItems()
	}

	return &MenuView{Categories: categories, Items: items}, nil
}

// ItemByID resolves the item a cart mutation refers to. Demo items are only
// reachable in degraded mode, where the storefront may be serving them.
func (s *MenuService) ItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err == nil {
		return item, nil
	}
	if s.strict {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load menu item", err)
	}
	if demo, ok := findDemoItem(id); ok {
		return demo, nil
	}
	return nil, err
}

// ListAll is the manage screen's view: every category and every item,
// unavailable ones included, straight from storage. No demo fallback here;
// staff need to see what is actually saved.
func (s *MenuService) ListAll(ctx context.Context) (*MenuView, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, errors.NewInternalError("failed to load categories", err)
	}

	items, err := s.items.List(ctx)
	if err != nil {
		s.logger.Error("failed to list menu items", zap.Error(err))
		return nil, errors.NewInternalError("failed to load menu items", err)
	}

	return &MenuView{Categories: categories, Items: items}, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, name string, sortOrder int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("invalid category",
			errors.ValidationDetail{Field: "name", Message: "name is required"})
	}

	c := &domain.Category{Name: name, SortOrder: sortOrder}
	if err := s.categories.Insert(ctx, c); err != nil {
		s.logger.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return nil, errors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", zap.String("categoryId", c.ID), zap.String("name", name))
	return c, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, id, name string, sortOrder int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("invalid category",
			errors.ValidationDetail{Field: "name", Message: "name is required"})
	}

	c := domain.Category{ID: id, Name: name, SortOrder: sortOrder}
	if err := s.categories.Update(ctx, c); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update category", zap.String("categoryId", id), zap.Error(err))
		return nil, errors.NewInternalError("failed to update category", err)
	}

	return &c, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return err
		}
		s.logger.Error("failed to delete category", zap.String("categoryId", id), zap.Error(err))
		return errors.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", zap.String("categoryId", id))
	return nil
}

func validateItemInput(input ItemInput) (ItemInput, error) {
	var details []errors.ValidationDetail

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		details = append(details, errors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if input.Price <= 0 {
		details = append(details, errors.ValidationDetail{Field: "price", Message: "price must be greater than zero"})
	}

	if len(details) > 0 {
		return input, errors.NewValidationError("invalid menu item", details...)
	}
	return input, nil
}

func itemFromInput(input ItemInput) domain.MenuItem {
	item := domain.MenuItem{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		IsAvailable:    input.IsAvailable,
		IsDailySpecial: input.IsDailySpecial,
	}
	// Empty category means uncategorized, stored as NULL.
	if input.CategoryID != "" {
		item.CategoryID = &input.CategoryID
	}
	return item
}

func (s *MenuService) CreateItem(ctx context.Context, input ItemInput) (*domain.MenuItem, error) {
	input, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item := itemFromInput(input)
	if err := s.items.Insert(ctx, &item); err != nil {
		s.logger.Error("failed to create menu item", zap.String("name", item.Name), zap.Error(err))
		return nil, errors.NewInternalError("failed to create menu item", err)
	}

	s.logger.Info("menu item created", zap.String("itemId", item.ID), zap.String("name", item.Name))
	return &item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id string, input ItemInput) (*domain.MenuItem, error) {
	input, err := validateItemInput(input)
	if err != nil {
		return nil, err
	}

	item := itemFromInput(input)
	item.ID = id
	if err := s.items.Update(ctx, item); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update menu item", zap.String("itemId", id), zap.Error(err))
		return nil, errors.NewInternalError("failed to update menu item", err)
	}

	return &item, nil
}

func (s *MenuService) SetItemFlag(ctx context.Context, id string, flag ItemFlag, value bool) error {
	var field repository.BoolField
	switch flag {
	case FlagAvailable:
		field = repository.FieldAvailable
	case FlagDailySpecial:
		field = repository.FieldDailySpecial
	default:
		return errors.NewValidationError("invalid menu item flag",
			errors.ValidationDetail{Field: "flag", Message: "flag must be available or daily_special"})
	}

	if err := s.items.SetFlag(ctx, id, field, value); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return err
		}
		s.logger.Error("failed to toggle menu item flag",
			zap.String("itemId", id), zap.String("flag", string(flag)), zap.Error(err))
		return errors.NewInternalError("failed to toggle menu item flag", err)
	}

	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return err
		}
		s.logger.Error("failed to delete menu item", zap.String("itemId", id), zap.Error(err))
		return errors.NewInternalError("failed to delete menu item", err)
	}

	s.logger.Info("menu item deleted", zap.String("itemId", id))
	return nil
}

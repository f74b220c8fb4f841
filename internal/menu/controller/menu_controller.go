package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/dto"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/menu/service"
)

type MenuService interface {
	Menu(ctx context.Context) (*service.MenuView, error)
	ListAll(ctx context.Context) (*service.MenuView, error)
	CreateCategory(ctx context.Context, name string, sortOrder int) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string, sortOrder int) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateItem(ctx context.Context, input service.ItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id string, input service.ItemInput) (*domain.MenuItem, error)
	SetItemFlag(ctx context.Context, id string, flag service.ItemFlag, value bool) error
	DeleteItem(ctx context.Context, id string) error
}

type MenuController struct {
	svc    MenuService
	logger *zap.Logger
}

func NewMenuController(svc MenuService, logger *zap.Logger) *MenuController {
	return &MenuController{svc: svc, logger: logger}
}

// GetMenu serves the customer storefront: categories plus available items.
func (c *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	view, err := c.svc.Menu(r.Context())
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, menuResponse(view))
}

// GetCatalog serves the manage screen: everything, unavailable items included.
func (c *MenuController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	view, err := c.svc.ListAll(r.Context())
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, menuResponse(view))
}

func (c *MenuController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	category, err := c.svc.CreateCategory(r.Context(), req.Name, req.SortOrder)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusCreated, dto.FromCategory(*category))
}

func (c *MenuController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")

	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	category, err := c.svc.UpdateCategory(r.Context(), id, req.Name, req.SortOrder)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, dto.FromCategory(*category))
}

func (c *MenuController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	if err := c.svc.DeleteCategory(r.Context(), id); err != nil {
		c.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *MenuController) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.svc.CreateItem(r.Context(), itemInput(req))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusCreated, dto.FromMenuItem(*item))
}

func (c *MenuController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")

	var req dto.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.svc.UpdateItem(r.Context(), id, itemInput(req))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, dto.FromMenuItem(*item))
}

func (c *MenuController) SetItemFlag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")

	var req dto.ItemFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	flag := service.ItemFlag(strings.TrimSpace(req.Flag))
	if err := c.svc.SetItemFlag(r.Context(), id, flag, req.Value); err != nil {
		c.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *MenuController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemId")
	if err := c.svc.DeleteItem(r.Context(), id); err != nil {
		c.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func menuResponse(view *service.MenuView) dto.MenuResponse {
	return dto.MenuResponse{
		Categories: dto.FromCategories(view.Categories),
		Items:      dto.FromMenuItems(view.Items),
	}
}

func itemInput(req dto.MenuItemRequest) service.ItemInput {
	return service.ItemInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CategoryID:     req.CategoryID,
		IsAvailable:    req.IsAvailable,
		IsDailySpecial: req.IsDailySpecial,
	}
}

func (c *MenuController) handleServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *MenuController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (c *MenuController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *MenuController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

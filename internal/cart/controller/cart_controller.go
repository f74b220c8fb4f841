package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radhecafe/internal/cart"
	"radhecafe/internal/domain"
	"radhecafe/internal/dto"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/session"
)

// MenuItemResolver looks up the item a cart mutation refers to, so carts only
// ever hold real menu entries at the price currently on the menu.
type MenuItemResolver interface {
	ItemByID(ctx context.Context, id string) (*domain.MenuItem, error)
}

type CartController struct {
	carts  *cart.Registry
	menu   MenuItemResolver
	logger *zap.Logger
}

func NewCartController(carts *cart.Registry, menu MenuItemResolver, logger *zap.Logger) *CartController {
	return &CartController{carts: carts, menu: menu, logger: logger}
}

func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ct := c.carts.Get(session.FromContext(r.Context()))
	c.writeJSON(w, http.StatusOK, cartResponse(ct))
}

// AddItem puts one more of the item in the cart, starting at quantity one.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		c.writeValidationError(w, "invalid request", apperrors.ValidationDetail{
			Field:   "item_id",
			Message: "item_id is required",
		})
		return
	}

	item, err := c.menu.ItemByID(r.Context(), req.ItemID)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	if !item.IsAvailable {
		c.writeError(w, http.StatusConflict, "CONFLICT", "item is not available")
		return
	}

	ct := c.carts.Get(session.FromContext(r.Context()))
	ct.AddItem(*item)
	c.writeJSON(w, http.StatusOK, cartResponse(ct))
}

// RemoveItem takes one of the item out of the cart; the line disappears when
// its quantity reaches zero. Removing an absent item is a no-op.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ct := c.carts.Get(session.FromContext(r.Context()))
	ct.RemoveItem(chi.URLParam(r, "itemId"))
	c.writeJSON(w, http.StatusOK, cartResponse(ct))
}

func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ct := c.carts.Get(session.FromContext(r.Context()))
	ct.Clear()
	c.writeJSON(w, http.StatusOK, cartResponse(ct))
}

func cartResponse(ct *cart.Cart) dto.CartResponse {
	lines := ct.Lines()
	out := dto.CartResponse{
		Items:      make([]dto.CartLineDTO, 0, len(lines)),
		TotalItems: ct.TotalItems(),
		Subtotal:   ct.Subtotal(),
		Tax:        ct.Tax(),
		Total:      ct.Total(),
	}
	for _, line := range lines {
		out.Items = append(out.Items, dto.CartLineDTO{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Price:    line.Item.Price,
			Quantity: line.Quantity,
		})
	}
	return out
}

func (c *CartController) handleServiceError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
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

func (c *CartController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (c *CartController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CartController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

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
	"radhecafe/internal/notify"
	"radhecafe/internal/order/usecase"
	"radhecafe/internal/session"
)

type PlaceOrderUseCase interface {
	Place(ctx context.Context, req usecase.PlaceOrderRequest) (*domain.OrderSnapshot, error)
}

type OrderWatcher interface {
	Watch(ctx context.Context, orderID string) <-chan notify.Update
}

type OrderController struct {
	useCase  PlaceOrderUseCase
	sessions session.Store
	watcher  OrderWatcher
	logger   *zap.Logger
}

func NewOrderController(useCase PlaceOrderUseCase, sessions session.Store, watcher OrderWatcher, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase:  useCase,
		sessions: sessions,
		watcher:  watcher,
		logger:   logger,
	}
}

// SaveReview stores the review-step choices for checkout to pick up.
func (c *OrderController) SaveReview(w http.ResponseWriter, r *http.Request) {
	var req dto.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	fulfillment := domain.Fulfillment(req.Fulfillment)
	if fulfillment != domain.FulfillmentDineIn && fulfillment != domain.FulfillmentTakeaway {
		c.writeValidationError(w, "invalid fulfillment", apperrors.ValidationDetail{
			Field:   "fulfillment",
			Message: "fulfillment must be dine-in or takeaway",
		})
		return
	}

	details := domain.ReviewDetails{Fulfillment: fulfillment}
	if fulfillment == domain.FulfillmentDineIn {
		details.TableNumber = strings.TrimSpace(req.TableNumber)
	}

	sessionID := session.FromContext(r.Context())
	if err := c.sessions.Save(r.Context(), sessionID, session.KeyOrderDetails, details); err != nil {
		c.logger.Error("failed to save review details", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	snapshot, err := c.useCase.Place(r.Context(), usecase.PlaceOrderRequest{
		SessionID:     session.FromContext(r.Context()),
		Name:          req.Name,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		c.handleUseCaseError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, snapshot)
}

// LastOrder returns the confirmation snapshot saved at checkout. It works for
// local-only orders too, since the snapshot lives in the session rather than
// in storage.
func (c *OrderController) LastOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := session.FromContext(r.Context())

	var snapshot domain.OrderSnapshot
	err := c.sessions.Load(r.Context(), sessionID, session.KeyLastOrder, &snapshot)
	if err == session.ErrNotFound {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", "no recent order")
		return
	}
	if err != nil {
		c.logger.Error("failed to load order snapshot", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	c.writeJSON(w, http.StatusOK, snapshot)
}

// StreamEvents pushes status updates for one order as server-sent events,
// ending with a ready notification payload when the kitchen marks it ready.
func (c *OrderController) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming unsupported")
		return
	}

	orderID := chi.URLParam(r, "orderId")
	updates := c.watcher.Watch(r.Context(), orderID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for update := range updates {
		data, err := json.Marshal(update)
		if err != nil {
			c.logger.Error("failed to encode status update", zap.Error(err))
			continue
		}
		if _, err := w.Write(append(append([]byte("data: "), data...), '\n', '\n')); err != nil {
			return
		}
		flusher.Flush()
	}
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
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

func (c *OrderController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

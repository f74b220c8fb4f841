package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radhecafe/internal/domain"
	"radhecafe/internal/dto"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/kitchen/service"
)

type KitchenService interface {
	FetchOrders(ctx context.Context) ([]service.OrderView, error)
	Transition(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
}

type DashboardStreamer interface {
	Stream(ctx context.Context) <-chan service.Snapshot
}

type KitchenController struct {
	svc       KitchenService
	dashboard DashboardStreamer
	logger    *zap.Logger
}

func NewKitchenController(svc KitchenService, dashboard DashboardStreamer, logger *zap.Logger) *KitchenController {
	return &KitchenController{svc: svc, dashboard: dashboard, logger: logger}
}

// ListOrders returns the dashboard's order list with counts. Counts always
// cover all orders; the optional status query only narrows the list, so the
// filter tab badges stay correct while a tab is selected.
func (c *KitchenController) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := c.svc.FetchOrders(r.Context())
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	counts := service.Counts(views)
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := views[:0]
		for _, v := range views {
			if v.Status == domain.OrderStatus(status) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	c.writeJSON(w, http.StatusOK, kitchenOrdersResponse(views, counts))
}

func (c *KitchenController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.svc.Transition(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.StatusUpdateResponse{
		OrderID: order.ID,
		Status:  string(order.Status),
	})
}

// StreamOrders pushes full dashboard snapshots as server-sent events, one on
// connect and one per order change.
func (c *KitchenController) StreamOrders(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming unsupported")
		return
	}

	snapshots := c.dashboard.Stream(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snapshot := range snapshots {
		payload := kitchenOrdersResponse(snapshot.Orders, snapshot.Counts)
		data, err := json.Marshal(payload)
		if err != nil {
			c.logger.Error("failed to encode snapshot", zap.Error(err))
			continue
		}
		if _, err := w.Write(append(append([]byte("data: "), data...), '\n', '\n')); err != nil {
			return
		}
		flusher.Flush()
	}
}

func kitchenOrdersResponse(views []service.OrderView, counts service.StatusCounts) dto.KitchenOrdersResponse {
	out := dto.KitchenOrdersResponse{
		Orders: make([]dto.KitchenOrderDTO, len(views)),
		Counts: dto.StatusCountsDTO{
			All:       counts.All,
			Pending:   counts.Pending,
			Preparing: counts.Preparing,
			Ready:     counts.Ready,
			Completed: counts.Completed,
		},
	}
	for i, v := range views {
		out.Orders[i] = dto.KitchenOrderDTO{
			OrderDTO: dto.FromOrder(v.Order),
			Items:    dto.FromOrderLines(v.Items),
			Urgent:   v.Urgent,
		}
	}
	return out
}

func (c *KitchenController) handleServiceError(w http.ResponseWriter, err error) {
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

func (c *KitchenController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (c *KitchenController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *KitchenController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

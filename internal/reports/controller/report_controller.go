package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radhecafe/internal/dto"
	apperrors "radhecafe/internal/errors"
	"radhecafe/internal/reports/service"
)

type ReportService interface {
	Daily(ctx context.Context, date time.Time) (*service.DailyReport, error)
	TogglePayment(ctx context.Context, orderID string) (string, error)
}

type ReportController struct {
	svc    ReportService
	logger *zap.Logger
}

func NewReportController(svc ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{svc: svc, logger: logger}
}

// GetDaily serves the report for one calendar day. The date query defaults to
// today when absent.
func (c *ReportController) GetDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.writeValidationError(w, "invalid date", apperrors.ValidationDetail{
				Field:   "date",
				Message: "date must be formatted YYYY-MM-DD",
			})
			return
		}
		date = parsed
	}

	report, err := c.svc.Daily(r.Context(), date)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, reportResponse(report))
}

func (c *ReportController) TogglePayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	status, err := c.svc.TogglePayment(r.Context(), orderID)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.PaymentToggleResponse{
		OrderID:       orderID,
		PaymentStatus: status,
	})
}

func reportResponse(report *service.DailyReport) dto.DailyReportResponse {
	out := dto.DailyReportResponse{
		Date: report.Date,
		Summary: dto.ReportSummaryDTO{
			TotalOrders:  report.Summary.TotalOrders,
			TotalRevenue: report.Summary.TotalRevenue,
			CashOrders:   report.Summary.CashOrders,
			OnlineOrders: report.Summary.OnlineOrders,
			PaidOrders:   report.Summary.PaidOrders,
		},
		Orders: make([]dto.ReportOrderDTO, len(report.Orders)),
	}
	for i, row := range report.Orders {
		out.Orders[i] = dto.ReportOrderDTO{
			OrderDTO: dto.FromOrder(row.Order),
			Items:    dto.FromOrderLines(row.Items),
		}
	}
	return out
}

func (c *ReportController) handleServiceError(w http.ResponseWriter, err error) {
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

func (c *ReportController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (c *ReportController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ReportController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

package reports

import (
	"database/sql"

	"go.uber.org/zap"

	"radhecafe/internal/config"
	orderrepo "radhecafe/internal/order/repository"
	"radhecafe/internal/reports/controller"
	"radhecafe/internal/reports/service"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.ReportController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	svc := service.NewReportService(orderRepo, orderItemRepo, logger, cfg.Checkout.Strict())

	return controller.NewReportController(svc, logger)
}

package kitchen

import (
	"database/sql"

	"go.uber.org/zap"

	"radhecafe/internal/config"
	"radhecafe/internal/kitchen/controller"
	"radhecafe/internal/kitchen/service"
	orderrepo "radhecafe/internal/order/repository"
	"radhecafe/internal/realtime"
)

func NewModule(
	db *sql.DB,
	cfg *config.Config,
	changes realtime.Publisher,
	events service.EventProducer,
	hub *realtime.Hub,
	logger *zap.Logger,
) *controller.KitchenController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	svc := service.NewKitchenService(
		orderRepo,
		orderItemRepo,
		changes,
		events,
		logger,
		cfg.Checkout.Strict(),
		cfg.Kitchen.UrgentAfter,
	)
	dashboard := service.NewDashboard(svc, hub, logger)

	return controller.NewKitchenController(svc, dashboard, logger)
}

package order

import (
	"database/sql"

	"go.uber.org/zap"

	"radhecafe/internal/cart"
	"radhecafe/internal/config"
	"radhecafe/internal/notify"
	"radhecafe/internal/order/controller"
	orderrepo "radhecafe/internal/order/repository"
	"radhecafe/internal/order/service"
	"radhecafe/internal/order/usecase"
	"radhecafe/internal/realtime"
	"radhecafe/internal/session"
)

func NewModule(
	db *sql.DB,
	cfg *config.Config,
	carts *cart.Registry,
	sessions session.Store,
	changes realtime.Publisher,
	events usecase.EventProducer,
	hub *realtime.Hub,
	logger *zap.Logger,
) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	checkoutSvc := service.NewCheckoutService(db, orderRepo, orderItemRepo, logger)

	uc := usecase.NewPlaceOrderUseCase(
		carts,
		sessions,
		checkoutSvc,
		changes,
		events,
		logger,
		cfg.Checkout.Strict(),
	)

	watcher := notify.NewWatcher(hub, logger)

	return controller.NewOrderController(uc, sessions, watcher, logger)
}

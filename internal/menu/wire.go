package menu

import (
	"database/sql"

	"go.uber.org/zap"

	"radhecafe/internal/config"
	"radhecafe/internal/menu/controller"
	"radhecafe/internal/menu/repository"
	"radhecafe/internal/menu/service"
)

// NewModule also returns the service so the cart module can resolve items.
func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.MenuController, *service.MenuService) {
	categoryRepo := repository.NewMySQLCategoryRepository(db)
	itemRepo := repository.NewMySQLMenuItemRepository(db)

	svc := service.NewMenuService(categoryRepo, itemRepo, logger, cfg.Checkout.Strict())

	return controller.NewMenuController(svc, logger), svc
}

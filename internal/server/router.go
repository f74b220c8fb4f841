package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cartcontroller "radhecafe/internal/cart/controller"
	kitchencontroller "radhecafe/internal/kitchen/controller"
	menucontroller "radhecafe/internal/menu/controller"
	ordercontroller "radhecafe/internal/order/controller"
	reportcontroller "radhecafe/internal/reports/controller"
	"radhecafe/internal/session"
)

// Controllers collects the HTTP surface of every module.
type Controllers struct {
	Menu    *menucontroller.MenuController
	Cart    *cartcontroller.CartController
	Order   *ordercontroller.OrderController
	Kitchen *kitchencontroller.KitchenController
	Reports *reportcontroller.ReportController
}

func NewRouter(c Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(session.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", c.Menu.GetMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", c.Cart.GetCart)
			r.Delete("/", c.Cart.ClearCart)
			r.Post("/items", c.Cart.AddItem)
			r.Delete("/items/{itemId}", c.Cart.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", c.Order.PlaceOrder)
			r.Put("/review", c.Order.SaveReview)
			r.Get("/last", c.Order.LastOrder)
			r.Get("/{orderId}/events", c.Order.StreamEvents)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/menu", c.Menu.GetCatalog)

			r.Post("/categories", c.Menu.CreateCategory)
			r.Put("/categories/{categoryId}", c.Menu.UpdateCategory)
			r.Delete("/categories/{categoryId}", c.Menu.DeleteCategory)

			r.Post("/items", c.Menu.CreateItem)
			r.Put("/items/{itemId}", c.Menu.UpdateItem)
			r.Patch("/items/{itemId}/flags", c.Menu.SetItemFlag)
			r.Delete("/items/{itemId}", c.Menu.DeleteItem)

			r.Get("/orders", c.Kitchen.ListOrders)
			r.Get("/orders/stream", c.Kitchen.StreamOrders)
			r.Patch("/orders/{orderId}/status", c.Kitchen.UpdateStatus)
			r.Post("/orders/{orderId}/payment", c.Reports.TogglePayment)

			r.Get("/reports/daily", c.Reports.GetDaily)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ateliersillage/sillage-backend/api/controllers"
	"github.com/ateliersillage/sillage-backend/api/middleware"
	"github.com/ateliersillage/sillage-backend/internal/bag"
	"github.com/ateliersillage/sillage-backend/internal/catalog"
	checkoutsvc "github.com/ateliersillage/sillage-backend/internal/checkout"
	"github.com/ateliersillage/sillage-backend/internal/orders"
	"github.com/ateliersillage/sillage-backend/pkg/auth/session"
	"github.com/ateliersillage/sillage-backend/pkg/config"
	"github.com/ateliersillage/sillage-backend/pkg/db"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
	"github.com/ateliersillage/sillage-backend/pkg/metrics"
	"github.com/ateliersillage/sillage-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. Keeping it as one struct
// keeps cmd/api wiring readable.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics

	Catalog     catalog.Service
	BagStore    *bag.Store
	BagResolver *bag.Resolver
	Checkout    checkoutsvc.Service
	Orders      orders.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Catalog and bag are browsable without an account; the bag session
	// header scopes server-held bag state per shopper.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(d.Catalog, logg))
		r.Get("/products/{slug}", controllers.GetProduct(d.Catalog, logg))
		r.Get("/collections/{slug}", controllers.GetCollection(d.Catalog, logg))
	})

	r.Route("/api/v1/bag", func(r chi.Router) {
		r.Use(middleware.BagSession(logg))
		r.Get("/", controllers.BagFetch(d.BagStore, logg))
		r.Put("/", controllers.BagReplace(d.BagStore, logg))
		r.Delete("/", controllers.BagClear(d.BagStore, logg))
		r.Get("/details", controllers.BagDetails(d.BagStore, d.BagResolver, logg))
		r.Get("/samples", controllers.ListSamples(d.Catalog, logg))
		r.Post("/items", controllers.BagAddItem(d.BagStore, logg))
		r.Put("/items", controllers.BagUpdateItem(d.BagStore, logg))
		r.Delete("/items/{productId}/{volumeId}", controllers.BagRemoveItem(d.BagStore, logg))
		r.Put("/sample", controllers.BagSelectSample(d.BagStore, logg))
		r.Post("/added/clear", controllers.BagClearAdded(d.BagStore, logg))
		r.Post("/resolve", controllers.BagResolve(d.BagResolver, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.Idempotency(d.Redis, cfg.Checkout.IdempotencyTTL, logg))

		r.With(
			middleware.BagSession(logg),
			middleware.CheckoutRateLimit(cfg.Checkout, d.Redis, logg),
		).Post("/checkout", controllers.Checkout(d.Checkout, d.BagStore, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(d.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(d.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.RequestCancelOrder(d.Orders, logg))
			r.Post("/{orderId}/refund", controllers.RequestRefundOrder(d.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole("ADMIN", logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(d.Orders, logg))
			r.Post("/{orderId}/accept-cancel", controllers.AdminAcceptCancel(d.Orders, logg))
			r.Post("/{orderId}/accept-refund", controllers.AdminAcceptRefund(d.Orders, logg))
			r.Post("/{orderId}/tracking", controllers.AdminAssignTracking(d.Orders, logg))
			r.Post("/{orderId}/status", controllers.AdminSetStatus(d.Orders, logg))
		})
	})

	return r
}

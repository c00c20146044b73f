package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vibecommerce/storefront-backend/api/controllers"
	"github.com/vibecommerce/storefront-backend/api/middleware"
	cartsvc "github.com/vibecommerce/storefront-backend/internal/cart"
	"github.com/vibecommerce/storefront-backend/internal/catalog"
	checkoutsvc "github.com/vibecommerce/storefront-backend/internal/checkout"
	ordersvc "github.com/vibecommerce/storefront-backend/internal/orders"
	"github.com/vibecommerce/storefront-backend/pkg/config"
	"github.com/vibecommerce/storefront-backend/pkg/db"
	"github.com/vibecommerce/storefront-backend/pkg/logger"
	"github.com/vibecommerce/storefront-backend/pkg/metrics"
	pkgredis "github.com/vibecommerce/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      *db.Client
	Redis   *pkgredis.Client
	Metrics *metrics.HTTPMetrics
	// MetricsGatherer serves /metrics; defaults to the global registry
	// when nil so tests can pass an isolated one.
	MetricsGatherer prometheus.Gatherer

	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis))
	})

	gatherer := deps.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		var idempotencyStore pkgredis.IdempotencyStore
		if deps.Redis != nil {
			idempotencyStore = deps.Redis
		}
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{itemId}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{itemId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
		})
	})

	return r
}

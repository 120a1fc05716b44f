package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradehub-io/tradehub-backend/api/controllers"
	"github.com/tradehub-io/tradehub-backend/api/middleware"
	cartsvc "github.com/tradehub-io/tradehub-backend/internal/cart"
	catalogsvc "github.com/tradehub-io/tradehub-backend/internal/catalog"
	identitysvc "github.com/tradehub-io/tradehub-backend/internal/identity"
	ledgersvc "github.com/tradehub-io/tradehub-backend/internal/ledger"
	ordersvc "github.com/tradehub-io/tradehub-backend/internal/orders"
	"github.com/tradehub-io/tradehub-backend/pkg/auth/session"
	"github.com/tradehub-io/tradehub-backend/pkg/config"
	"github.com/tradehub-io/tradehub-backend/pkg/db"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
	"github.com/tradehub-io/tradehub-backend/pkg/logger"
	"github.com/tradehub-io/tradehub-backend/pkg/metrics"
	"github.com/tradehub-io/tradehub-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	Identity identitysvc.Service
	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Orders   ordersvc.Service
	Ledger   ledgersvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Identity, logg))
		r.Post("/login", controllers.AuthLogin(d.Identity, logg))
		r.Post("/logout", controllers.AuthLogout(d.Identity, cfg.JWT, logg))
	})

	r.Get("/api/v1/products", controllers.ProductList(d.Catalog, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleCustomer, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(d.Cart, logg))
				r.Get("/count", controllers.CartCount(d.Cart, logg))
				r.Post("/items", controllers.CartAddItem(d.Cart, logg))
				r.Delete("/items/{cartItemId}", controllers.CartRemoveItem(d.Cart, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.OrderPlace(d.Orders, logg))
				r.Get("/", controllers.OrderList(d.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(d.Orders, logg))
			})
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleVendor, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.VendorListProducts(d.Catalog, logg))
				r.Post("/", controllers.VendorCreateProduct(d.Catalog, logg))
				r.Get("/{productId}", controllers.VendorProductDetail(d.Ledger, logg))
				r.Patch("/{productId}", controllers.VendorUpdateProduct(d.Catalog, logg))
				r.Delete("/{productId}", controllers.VendorDeleteProduct(d.Catalog, logg))
			})
			r.Get("/sales", controllers.VendorSales(d.Ledger, logg))
			r.Get("/revenue", controllers.VendorRevenue(d.Ledger, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/{orderId}", controllers.VendorOrderDetail(d.Ledger, logg))
				r.Post("/{orderId}/ship", controllers.VendorShipOrder(d.Orders, logg))
			})
		})
	})

	return r
}

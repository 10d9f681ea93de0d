package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmlinkhq/farmlink-backend/api/controllers"
	"github.com/farmlinkhq/farmlink-backend/api/middleware"
	"github.com/farmlinkhq/farmlink-backend/internal/auth"
	"github.com/farmlinkhq/farmlink-backend/internal/catalog"
	"github.com/farmlinkhq/farmlink-backend/internal/categories"
	"github.com/farmlinkhq/farmlink-backend/internal/filters"
	"github.com/farmlinkhq/farmlink-backend/internal/markets"
	"github.com/farmlinkhq/farmlink-backend/internal/vendors"
	pkgauth "github.com/farmlinkhq/farmlink-backend/pkg/auth"
	"github.com/farmlinkhq/farmlink-backend/pkg/config"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
	"github.com/farmlinkhq/farmlink-backend/pkg/metrics"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	AuthService     auth.Service
	CatalogService  catalog.Service
	VendorService   vendors.Service
	CategoryService categories.Service
	MarketService   markets.Service
}

// NewRouter assembles the HTTP surface: public catalog browsing, auth, and
// the authenticated admin/vendor API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	codec := filters.Codec{}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.BrowseProducts(deps.CatalogService, codec, logg))
		r.Get("/products/{productId}", controllers.GetProduct(deps.CatalogService, logg))
		r.Get("/categories", controllers.ListCategories(deps.CategoryService, logg))
		r.Get("/markets", controllers.ListMarkets(deps.MarketService, logg))
		r.Get("/markets/{marketId}", controllers.GetMarket(deps.MarketService, logg))

		r.Post("/auth/login", controllers.AuthLogin(deps.AuthService, logg))
	})

	r.Route("/api/vendor/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRoles(logg, pkgauth.RoleVendor, pkgauth.RoleAdmin))

		r.Get("/products", controllers.VendorListProducts(deps.CatalogService, logg))
		r.Post("/products", controllers.VendorCreateProduct(deps.CatalogService, logg))
		r.Patch("/products/{productId}", controllers.VendorUpdateProduct(deps.CatalogService, logg))
		r.Delete("/products/{productId}", controllers.VendorDeleteProduct(deps.CatalogService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRoles(logg, pkgauth.RoleAdmin))

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.AdminRegisterVendor(deps.VendorService, logg))
			r.Get("/", controllers.AdminListVendors(deps.VendorService, logg))
			r.Get("/{vendorId}", controllers.AdminGetVendor(deps.VendorService, logg))
			r.Patch("/{vendorId}", controllers.AdminUpdateVendor(deps.VendorService, logg))
			r.Put("/{vendorId}/active", controllers.AdminSetVendorActive(deps.VendorService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(deps.CategoryService, logg))
			r.Patch("/{categoryId}", controllers.AdminUpdateCategory(deps.CategoryService, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(deps.CategoryService, logg))
		})

		r.Post("/markets", controllers.AdminCreateMarket(deps.MarketService, logg))
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acarreras/tienda-backend/api/controllers"
	"github.com/acarreras/tienda-backend/api/middleware"
	authsvc "github.com/acarreras/tienda-backend/internal/auth"
	cartsvc "github.com/acarreras/tienda-backend/internal/cart"
	ordersvc "github.com/acarreras/tienda-backend/internal/orders"
	productsvc "github.com/acarreras/tienda-backend/internal/products"
	"github.com/acarreras/tienda-backend/pkg/auth/session"
	"github.com/acarreras/tienda-backend/pkg/config"
	"github.com/acarreras/tienda-backend/pkg/db"
	"github.com/acarreras/tienda-backend/pkg/logger"
	"github.com/acarreras/tienda-backend/pkg/metrics"
	"github.com/acarreras/tienda-backend/pkg/redis"
)

// Params collects everything the HTTP surface needs. The router itself
// stays free of construction logic; main wires the concrete pieces.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	AuthService    authsvc.Service
	ProductService productsvc.Service
	OrderService   ordersvc.Service
	CartStore      *cartsvc.Store
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	requireAuth := middleware.Auth(cfg.JWT, p.Sessions, logg)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(p.ProductService, logg))
		r.Get("/{productId}", controllers.ProductGet(p.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", controllers.ProductCreate(p.ProductService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(p.ProductService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(p.ProductService, logg))
		})
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", controllers.CartGet(p.CartStore, logg))
		r.Delete("/", controllers.CartClear(p.CartStore, logg))
		r.Post("/items", controllers.CartAddItem(p.CartStore, p.ProductService, logg))
		r.Put("/items/{productId}", controllers.CartSetQuantity(p.CartStore, logg))
		r.Delete("/items/{productId}", controllers.CartRemoveItem(p.CartStore, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", controllers.OrderCreate(p.OrderService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.OrderList(p.OrderService, logg))
			r.Get("/{orderId}", controllers.OrderGet(p.OrderService, logg))
		})
	})

	return r
}

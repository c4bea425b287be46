package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoptodo/shoptodo-backend/api/controllers"
	"github.com/shoptodo/shoptodo-backend/api/middleware"
	"github.com/shoptodo/shoptodo-backend/internal/auth"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/pkg/auth/session"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/metrics"
)

// Params carries everything the router wires. Optional dependencies are left
// nil when their backing service is not configured: RateLimiter and
// SessionChecker without Redis, DB and Redis pingers for readiness, Gatherer
// when metrics are disabled.
type Params struct {
	Config          *config.Config
	Logger          *logger.Logger
	Catalog         *catalog.Catalog
	Registry        *shop.Registry
	AuthService     auth.Service
	RegisterService auth.RegisterService
	SessionChecker  session.AccessSessionChecker
	RateLimiter     middleware.RateLimiter
	DB              controllers.Pinger
	Redis           controllers.Pinger
	HTTPMetrics     *metrics.HTTPMetrics
	Gatherer        prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"db":    p.DB,
			"redis": p.Redis,
		}, logg))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(p.Catalog, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, p.RateLimiter, logg)).
				Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, p.Registry, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimiter, logg)).
				Post("/login", controllers.AuthLogin(p.AuthService, logg))
			r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, p.SessionChecker, logg),
				middleware.Shop(p.Registry, logg),
			)

			r.Post("/auth/logout", controllers.AuthLogout(p.AuthService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Post("/items", controllers.CartAddItem(logg))
				r.Put("/items/{productId}", controllers.CartUpdateItem(logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
			})

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", controllers.TodoList(logg))
				r.Post("/", controllers.TodoCreate(logg))
				r.Post("/{id}/toggle", controllers.TodoToggle(logg))
				r.Delete("/{id}", controllers.TodoDelete(logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutFetch(logg))
				r.Post("/begin", controllers.CheckoutBegin(logg))
				r.Post("/shipping", controllers.CheckoutShipping(logg))
				r.Post("/payment", controllers.CheckoutPayment(logg))
				r.Post("/back", controllers.CheckoutBack(logg))
				r.Post("/confirm", controllers.CheckoutConfirm(logg))
				r.Post("/close", controllers.CheckoutClose(logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(logg))
				r.Get("/{id}", controllers.OrderDetail(logg))
			})

			r.Get("/profile", controllers.ProfileFetch(logg))
			r.Put("/profile", controllers.ProfileUpdate(logg))
			r.Get("/language", controllers.LanguageFetch(logg))
			r.Put("/language", controllers.LanguageUpdate(logg))
			r.Post("/migrate", controllers.LocalImport(logg))
		})
	})

	return r
}

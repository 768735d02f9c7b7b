package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shreemobiles/storefront-backend/api/controllers"
	"github.com/shreemobiles/storefront-backend/api/middleware"
	authsvc "github.com/shreemobiles/storefront-backend/internal/auth"
	checkoutsvc "github.com/shreemobiles/storefront-backend/internal/checkout"
	invoicesvc "github.com/shreemobiles/storefront-backend/internal/invoices"
	offersvc "github.com/shreemobiles/storefront-backend/internal/offers"
	productsvc "github.com/shreemobiles/storefront-backend/internal/products"
	"github.com/shreemobiles/storefront-backend/pkg/auth/session"
	"github.com/shreemobiles/storefront-backend/pkg/config"
	"github.com/shreemobiles/storefront-backend/pkg/enums"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	"github.com/shreemobiles/storefront-backend/pkg/metrics"
	pkgredis "github.com/shreemobiles/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *pkgredis.Client,
	sessions session.AccessSessionChecker,
	authService authsvc.Service,
	productService productsvc.Service,
	offerService offersvc.Service,
	checkoutService checkoutsvc.Service,
	invoiceService invoicesvc.Service,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

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
		r.Get("/ready", controllers.HealthReady(cfg, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.Register(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.Logout(authService, logg))
			r.Get("/me", controllers.Me(authService, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/{id}", controllers.GetProduct(productService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.ListInvoices(invoiceService, logg))
			r.Get("/{id}", controllers.GetInvoice(invoiceService, logg))
			r.Get("/{id}/pdf", controllers.DownloadInvoicePDF(invoiceService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(productService, logg))
			r.Patch("/{id}", controllers.AdminUpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(productService, logg))
		})
		r.Route("/offers", func(r chi.Router) {
			r.Get("/", controllers.AdminListOffers(offerService, logg))
			r.Post("/", controllers.AdminCreateOffer(offerService, logg))
			r.Patch("/{id}", controllers.AdminUpdateOffer(offerService, logg))
			r.Post("/{id}/apply", controllers.AdminApplyOffer(offerService, logg))
			r.Post("/{id}/stop", controllers.AdminStopOffer(offerService, logg))
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.AdminListInvoices(invoiceService, logg))
		})
	})

	return r
}

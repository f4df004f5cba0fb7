package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/C00lPIXER/aperture/api/controllers"
	authcontrollers "github.com/C00lPIXER/aperture/api/controllers/auth"
	ordercontrollers "github.com/C00lPIXER/aperture/api/controllers/orders"
	"github.com/C00lPIXER/aperture/api/middleware"
	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/internal/auth"
	"github.com/C00lPIXER/aperture/internal/cart"
	"github.com/C00lPIXER/aperture/internal/catalog"
	"github.com/C00lPIXER/aperture/internal/coupons"
	"github.com/C00lPIXER/aperture/internal/orders"
	"github.com/C00lPIXER/aperture/internal/reports"
	"github.com/C00lPIXER/aperture/internal/wallet"
	"github.com/C00lPIXER/aperture/pkg/auth/session"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/logger"
	pkgredis "github.com/C00lPIXER/aperture/pkg/redis"
)

// cacheStore is what the router needs from redis: idempotency records, auth
// rate limits and readiness.
type cacheStore interface {
	pkgredis.Pinger
	pkgredis.RateLimiter
	pkgredis.IdempotencyStore
}

// Deps bundles everything the HTTP surface is built from.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Cache    cacheStore
	Sessions session.AccessSessionChecker
	Metrics  http.Handler

	Auth          auth.Service
	Register      auth.RegisterService
	AdminRegister auth.AdminRegisterService
	Catalog       catalog.Service
	Cart          cart.Service
	Coupons       coupons.Service
	Orders        orders.Service
	Wallet        wallet.Service
	Addresses     address.Service
	Reports       reports.Service
	Exporter      *reports.Exporter
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": d.DB,
			"redis":    d.Cache,
		}))
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	var limiter pkgredis.RateLimiter
	var idempotency func(http.Handler) http.Handler = passthrough
	if d.Cache != nil {
		limiter = d.Cache
		idempotency = middleware.Idempotency(d.Cache, logg)
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.LoginPolicy(cfg.AuthRateLimit), limiter, logg)).
			Post("/login", authcontrollers.Login(d.Auth, logg))
		r.With(middleware.AuthRateLimit(middleware.RegisterPolicy(cfg.AuthRateLimit), limiter, logg), idempotency).
			Post("/register", authcontrollers.Register(d.Register, logg))
		r.Post("/refresh", authcontrollers.Refresh(d.Auth, cfg.JWT, logg))
		r.Post("/logout", authcontrollers.Logout(d.Auth, cfg.JWT, logg))
		if !cfg.App.IsProd() {
			r.Post("/admin/register", authcontrollers.AdminRegister(d.AdminRegister, d.Auth, cfg, logg))
		}
	})

	// Storefront pages are public.
	r.Get("/", controllers.Home(d.Catalog, logg))
	r.Get("/shop", controllers.Shop(d.Catalog, cfg.Store, logg))
	r.Get("/product", controllers.ProductDetail(d.Catalog, logg))

	r.With(middleware.OptionalAuth(cfg.JWT, d.Sessions, logg)).
		Post("/cart/add", controllers.CartAdd(d.Cart, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(idempotency)

		r.Get("/cart", controllers.CartView(d.Cart, logg))
		r.Post("/cart/quantity", controllers.CartQuantity(d.Cart, logg))
		r.Post("/cart/remove", controllers.CartRemove(d.Cart, logg))
		r.Post("/cart/coupon", controllers.CartApplyCoupon(d.Coupons, logg))

		r.Get("/checkout", controllers.CheckoutView(d.Cart, logg))
		r.Post("/checkout/order", controllers.PlaceOrder(d.Orders, logg))

		r.Get("/orders", ordercontrollers.List(d.Orders, logg))
		r.Get("/orders/{orderID}", ordercontrollers.Detail(d.Orders, logg))
		r.Post("/order/cancel", ordercontrollers.Cancel(d.Orders, logg))
		r.Post("/order/return", ordercontrollers.Return(d.Orders, logg))

		r.Get("/wallet", controllers.WalletView(d.Wallet, logg))

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(d.Addresses, logg))
			r.Post("/", controllers.AddressCreate(d.Addresses, logg))
			r.Delete("/{addressID}", controllers.AddressDelete(d.Addresses, logg))
		})

		r.Route("/admin/report", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Post("/", controllers.AdminReport(d.Reports, logg))
			r.Get("/pdf", controllers.AdminReportPDF(d.Reports, d.Exporter, logg))
			r.Get("/excel", controllers.AdminReportExcel(d.Reports, d.Exporter, logg))
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}

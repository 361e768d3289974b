package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gracebuffer/storefront/api/controllers"
	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/internal/auth"
	"github.com/gracebuffer/storefront/internal/cart"
	"github.com/gracebuffer/storefront/internal/catalog"
	checkoutsvc "github.com/gracebuffer/storefront/internal/checkout"
	"github.com/gracebuffer/storefront/internal/history"
	paymentsvc "github.com/gracebuffer/storefront/internal/payment"
	"github.com/gracebuffer/storefront/internal/prefs"
	"github.com/gracebuffer/storefront/internal/session"
	stocksvc "github.com/gracebuffer/storefront/internal/stock"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/db"
	"github.com/gracebuffer/storefront/pkg/logger"
	"github.com/gracebuffer/storefront/pkg/metrics"
	"github.com/gracebuffer/storefront/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Catalog *catalog.Client
	Metrics *metrics.HTTPMetrics

	Auth      auth.Service
	Carts     cart.Service
	Stocks    stocksvc.Service
	Checkouts checkoutsvc.Service
	Payments  paymentsvc.Service
	Session   *session.Store
	History   *history.Repository
	Prefs     *prefs.Repository
}

// NewRouter assembles the storefront's HTTP surface. Menu and product
// pages are public; everything touching the shopper's cart or session
// sits behind the login gate.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	loginPath := cfg.Auth.LoginPath

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.UserContext(logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.Menu(deps.Catalog, deps.Carts, logg))
		r.Get("/categories", controllers.Categories(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, deps.Stocks, deps.Carts, logg))
		r.Post("/products/{productId}/reviews", controllers.CreateReview(deps.Catalog, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(deps.Auth, logg))
			r.Post("/logout", controllers.Logout(deps.Auth, logg))
			r.Get("/me", controllers.CurrentSession(deps.Auth, logg, loginPath))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(logg, loginPath))

			r.Post("/products/{productId}/confirm-order", controllers.ConfirmOrder(deps.Catalog, deps.Stocks, deps.Carts, logg, loginPath))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.Cart(deps.Carts, logg))
				r.Post("/items", controllers.AddCartItem(deps.Carts, logg, loginPath))
				r.Delete("/items", controllers.RemoveCartItem(deps.Carts, logg, loginPath))
				r.Delete("/", controllers.ClearCart(deps.Carts, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.Checkout(deps.Checkouts, deps.Carts, logg, loginPath))
				r.Post("/", controllers.ProceedToPayment(deps.Checkouts, logg, loginPath))
			})

			r.Route("/payment", func(r chi.Router) {
				r.Get("/", controllers.PaymentPage(deps.Checkouts, deps.Catalog, deps.Session, logg, loginPath))
				r.Post("/method", controllers.SelectPaymentMethod(deps.Payments, logg, loginPath))
				r.Post("/qr", controllers.PaymentQR(deps.Payments, logg, loginPath))
				r.Post("/confirm", controllers.ConfirmPayment(deps.Payments, logg, loginPath))
				r.Post("/cancel", controllers.CancelPayment(deps.Payments, logg))
			})

			r.Get("/orders/history", controllers.OrderHistory(deps.History, logg))

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/theme", controllers.ThemePreference(deps.Prefs, logg))
				r.Put("/theme", controllers.SetThemePreference(deps.Prefs, logg))
			})
		})
	})

	return r
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutrimart/nutrimart-backend/api/controllers"
	"github.com/nutrimart/nutrimart-backend/api/middleware"
	authsvc "github.com/nutrimart/nutrimart-backend/internal/auth"
	"github.com/nutrimart/nutrimart-backend/internal/cart"
	"github.com/nutrimart/nutrimart-backend/internal/catalog"
	checkoutsvc "github.com/nutrimart/nutrimart-backend/internal/checkout"
	"github.com/nutrimart/nutrimart-backend/internal/orders"
	"github.com/nutrimart/nutrimart-backend/internal/reviews"
	"github.com/nutrimart/nutrimart-backend/internal/stores"
	"github.com/nutrimart/nutrimart-backend/internal/users"
	"github.com/nutrimart/nutrimart-backend/internal/wishlist"
	"github.com/nutrimart/nutrimart-backend/pkg/auth/session"
	"github.com/nutrimart/nutrimart-backend/pkg/config"
	"github.com/nutrimart/nutrimart-backend/pkg/db"
	"github.com/nutrimart/nutrimart-backend/pkg/logger"
	"github.com/nutrimart/nutrimart-backend/pkg/metrics"
	"github.com/nutrimart/nutrimart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Registry    prometheus.Gatherer

	AuthService     authsvc.Service
	CatalogService  catalog.Service
	ReviewService   reviews.Service
	StoreService    stores.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrderService    orders.Service
	WishlistService wishlist.Service
	UserService     users.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront pages. Product detail gets optional auth so
		// signed-in viewers see their own review state.
		r.Get("/catalog", controllers.CatalogList(deps.CatalogService, logg))
		r.Get("/catalog/search", controllers.CatalogSearch(deps.CatalogService, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg)).
			Get("/products/{productId}", controllers.CatalogDetail(deps.CatalogService, logg))
		r.Get("/about", controllers.CatalogAbout(deps.CatalogService, logg))
		r.Get("/stores", controllers.StoresList(deps.StoreService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
				Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
				Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/products/{productId}/reviews", controllers.ReviewCreate(deps.ReviewService, logg))

			r.Get("/profile", controllers.ProfileGet(deps.UserService, logg))
			r.Patch("/profile", controllers.ProfileUpdate(deps.UserService, logg))

			r.Get("/wishlist", controllers.WishlistList(deps.WishlistService, logg))
			r.Post("/wishlist/items", controllers.WishlistAdd(deps.WishlistService, logg))
			r.Delete("/wishlist/items/{itemId}", controllers.WishlistRemove(deps.WishlistService, logg))

			r.Get("/cart", controllers.CartGet(deps.CartService, logg))
			r.Post("/cart/items", controllers.CartAddItem(deps.CartService, logg))
			r.Patch("/cart/items", controllers.CartUpdate(deps.CartService, logg))
			r.Delete("/cart/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

			r.Get("/orders", controllers.OrdersList(deps.OrderService, logg))
			r.Get("/orders/{orderId}", controllers.OrderDetail(deps.OrderService, logg))
		})
	})

	return r
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nutrimart/nutrimart-backend/api/routes"
	"github.com/nutrimart/nutrimart-backend/internal/auth"
	"github.com/nutrimart/nutrimart-backend/internal/cart"
	"github.com/nutrimart/nutrimart-backend/internal/catalog"
	"github.com/nutrimart/nutrimart-backend/internal/checkout"
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
	"github.com/nutrimart/nutrimart-backend/pkg/migrate"
	"github.com/nutrimart/nutrimart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	storeRepo := stores.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	reviewRepo := reviews.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	wishlistRepo := wishlist.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		Sessions:    sessionManager,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	requireService(logg, "auth", err)

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		CatalogRepo:    catalogRepo,
		FeaturedBrands: cfg.Catalog.FeaturedBrands,
	})
	requireService(logg, "catalog", err)

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:  reviewRepo,
		ProductRepo: catalogRepo,
	})
	requireService(logg, "reviews", err)

	storeService, err := stores.NewService(storeRepo)
	requireService(logg, "stores", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: catalogRepo,
	})
	requireService(logg, "cart", err)

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		DB:        dbClient,
		CartRepo:  cartRepo,
		StoreRepo: storeRepo,
	})
	requireService(logg, "checkout", err)

	orderService, err := orders.NewService(orderRepo)
	requireService(logg, "orders", err)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  catalogRepo,
	})
	requireService(logg, "wishlist", err)

	userService, err := users.NewService(users.ServiceParams{
		UserRepo:     userRepo,
		WishlistRepo: wishlistRepo,
		OrderRepo:    orderRepo,
	})
	requireService(logg, "users", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,
		Registry:    registry,

		AuthService:     authService,
		CatalogService:  catalogService,
		ReviewService:   reviewService,
		StoreService:    storeService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		OrderService:    orderService,
		WishlistService: wishlistService,
		UserService:     userService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeout); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}

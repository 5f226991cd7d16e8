package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/auth"
	"github.com/keymaxprot/backend/internal/booking"
	"github.com/keymaxprot/backend/internal/cache"
	"github.com/keymaxprot/backend/internal/cart"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/config"
	"github.com/keymaxprot/backend/internal/events"
	"github.com/keymaxprot/backend/internal/forum"
	"github.com/keymaxprot/backend/internal/garage"
	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
	"github.com/keymaxprot/backend/internal/metrics"
	"github.com/keymaxprot/backend/internal/middleware"
	"github.com/keymaxprot/backend/internal/orders"
	"github.com/keymaxprot/backend/internal/search"
	"github.com/keymaxprot/backend/internal/server"
	"github.com/keymaxprot/backend/internal/servicecat"
	"github.com/keymaxprot/backend/internal/stats"
	"github.com/keymaxprot/backend/internal/tutorials"
	"github.com/keymaxprot/backend/internal/uploads"
	"github.com/keymaxprot/backend/pkg/db"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if err := migrate(database); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	redisCache := cache.New(cfg.RedisAddr)

	esClient, err := search.NewClient(cfg)
	if err != nil {
		log.Error("elasticsearch init failed", "error", err)
		os.Exit(1)
	}
	var indexer *search.Indexer
	if esClient != nil {
		indexer = &search.Indexer{ES: esClient}
	}

	store, err := uploads.NewStorage(ctx, cfg)
	if err != nil {
		log.Error("object storage init failed", "error", err)
		os.Exit(1)
	}

	checkout := orders.NewCheckoutClient(cfg.CheckoutBaseURL, cfg.CheckoutAccessToken, orders.BackURLs{
		Success: cfg.CheckoutSuccessURL,
		Failure: cfg.CheckoutFailureURL,
		Pending: cfg.CheckoutPendingURL,
	})

	authRepo := &auth.GormRepo{DB: database}
	catalogRepo := &catalog.GormRepo{DB: database}
	cartRepo := &cart.GormRepo{DB: database}
	ordersRepo := &orders.GormRepo{DB: database}
	bookingRepo := &booking.GormRepo{DB: database}
	garageRepo := &garage.GormRepo{DB: database}
	forumRepo := &forum.GormRepo{DB: database}

	catalogSvc := &catalog.Service{Repo: catalogRepo, Events: producer}
	tutorialSvc := &tutorials.Service{DB: database}
	if indexer != nil {
		catalogSvc.Index = indexer
		tutorialSvc.Index = indexer
	}

	deps := &server.Deps{
		DB:       database,
		Auth:     middleware.NewAuthMiddleware(cfg.JWTSecret),
		Users:    &auth.HTTP{Svc: &auth.Service{Repo: authRepo, JWTSecret: cfg.JWTSecret, JWTExpiry: cfg.JWTExpiry}},
		Products: &catalog.HTTP{Svc: catalogSvc},
		Services: &servicecat.HTTP{DB: database},
		Cart:     &cart.HTTP{Svc: &cart.Service{Repo: cartRepo, Catalog: catalogRepo}},
		Orders: &orders.HTTP{
			Svc:      &orders.Service{Repo: ordersRepo, Catalog: catalogRepo, Cart: cartRepo, Events: producer},
			Checkout: checkout,
		},
		Booking: &booking.HTTP{Svc: &booking.Service{Repo: bookingRepo, DB: database, Events: producer}},
		Garage:  &garage.HTTP{Svc: &garage.Service{Repo: garageRepo}},
		Forum:   &forum.HTTP{Svc: &forum.Service{Repo: forumRepo}},
		Tutors:  &tutorials.HTTP{Svc: tutorialSvc},
		Stats:   &stats.HTTP{Svc: &stats.Service{DB: database, Cache: redisCache}},
		Search:  &search.HTTP{Svc: &search.Service{DB: database, ES: esClient}},
		Uploads: &uploads.HTTP{Store: store},
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpx.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		echomw.CORS(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
	)

	server.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "service", cfg.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}
	if err := redisCache.Close(); err != nil {
		log.Error("redis close error", "error", err)
	}

	log.Info("shutdown complete")
}

func migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&auth.User{},
		&catalog.Product{},
		&servicecat.ServiceOffering{},
		&cart.CartItem{},
		&cart.Favorite{},
		&orders.Order{},
		&orders.OrderItem{},
		&orders.Payment{},
		&booking.Appointment{},
		&garage.Vehicle{},
		&garage.VehicleOwnership{},
		&garage.ServiceRecord{},
		&garage.ServiceRecordItem{},
		&forum.Thread{},
		&forum.Post{},
		&forum.Comment{},
		&tutorials.Tutorial{},
		&tutorials.Review{},
	)
}

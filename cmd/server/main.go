// Package main is the entry point for the building management API server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	"github.com/skylinehq/building-api/internal/config"
	"github.com/skylinehq/building-api/internal/database"
	"github.com/skylinehq/building-api/internal/handler"
	"github.com/skylinehq/building-api/internal/middleware"
	"github.com/skylinehq/building-api/internal/repository"
	"github.com/skylinehq/building-api/internal/service"
)

func main() {
	// Setup structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Starting building management API",
		slog.String("environment", cfg.Server.Environment),
		slog.Int("port", cfg.Server.Port),
	)

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	// Connect to Redis
	redis, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	// Payment processor client
	stripe := &stripeclient.API{}
	stripe.Init(cfg.Stripe.SecretKey, nil)

	// Repositories
	pool := db.Pool()
	apartmentRepo := repository.NewApartmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)

	// Services
	tokenService := service.NewTokenService(cfg.Auth)
	userService := service.NewUserService(userRepo, tokenService)
	bookingService := service.NewBookingService(bookingRepo, apartmentRepo, userRepo)
	paymentService := service.NewPaymentService(stripe.PaymentIntents, historyRepo, userRepo, cfg.Stripe, logger)
	couponService := service.NewCouponService(couponRepo)

	// Handlers
	apartmentHandler := handler.NewApartmentHandler(apartmentRepo)
	authHandler := handler.NewAuthHandler(userService, cfg.Auth, cfg.Server)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	userHandler := handler.NewUserHandler(userService)
	couponHandler := handler.NewCouponHandler(couponService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.RateLimit(redis, middleware.DefaultRateLimitConfig()))

	// Health check endpoints (no auth required)
	r.Get("/health", healthHandler())
	r.Get("/ready", readyHandler(db, redis))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Building management server is running"))
	})

	// Public routes
	r.Mount("/apartments", apartmentHandler.Routes())
	r.Mount("/api/coupons", couponHandler.Routes())
	r.Post("/create-user", authHandler.CreateUser)
	r.Post("/login", authHandler.Login)
	r.Post("/login-with-google", authHandler.LoginWithGoogle)
	r.Post("/jwt", authHandler.IssueCookie)
	r.Post("/logout", authHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokenService, cfg.Auth.CookieName))

		r.Get("/login-user", authHandler.LoginUser)
		r.Get("/users", userHandler.List)
		r.Patch("/update-user-role/{id}", userHandler.UpdateRole)

		r.Post("/agreement", bookingHandler.Agreement)
		r.Get("/user-apartment", bookingHandler.UserApartment)

		r.Post("/create-payment-intent", paymentHandler.CreateIntent)
		r.Post("/create-payment-history", paymentHandler.CreateHistory)
		r.Get("/get-user-history", paymentHandler.UserHistory)
		r.Get("/apartments-payments", paymentHandler.AllHistories)
		r.Patch("/update-payment-history-status", paymentHandler.UpdateStatus)
	})

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server", slog.String("signal", sig.String()))

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped gracefully")
}

// healthHandler returns a simple health check that always succeeds if the
// server is running.
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

// readyHandler returns a readiness check that verifies database and Redis
// connections.
func readyHandler(db *database.Postgres, redis *database.Redis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","component":"database"}`))
			return
		}

		if err := redis.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","component":"redis"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","database":"connected","redis":"connected"}`))
	}
}

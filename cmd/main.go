// cmd/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"ai_learning_tracker/internal/cache"
	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/handlers"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/repository"
	"ai_learning_tracker/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	appEnv := os.Getenv("APP_ENV")
	logger := middleware.NewAppLogger(os.Stderr, config.Cfg.Log.Level, appEnv)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion), slog.String("APP_ENV", appEnv))

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()
	if err := repository.Migrate(db); err != nil {
		slog.Error("Error migrating database", slog.Any("error", err))
		os.Exit(1)
	}

	startupCtx := middleware.WithLogger(context.Background(), logger)

	// 2. Threshold cache (任意)
	var thresholdCache service.ThresholdCache
	if config.Cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(startupCtx, config.Cfg.Redis.Addr, config.Cfg.Redis.Password, config.Cfg.Redis.DB)
		if err != nil {
			// キャッシュなしでも動く
			slog.Warn("Redis unavailable, level thresholds will be read from the database", slog.Any("error", err))
		} else {
			defer client.Close()
			thresholdCache = cache.NewRedisThresholdCache(client, config.Cfg.Redis.ThresholdTTL)
			slog.Info("Level threshold cache enabled", slog.String("addr", config.Cfg.Redis.Addr))
		}
	}

	// 3. Dependency Injection
	userRepo := repository.NewGormUserRepository()
	courseRepo := repository.NewGormCourseRepository()
	completionRepo := repository.NewGormCompletionRepository()
	pointsLogRepo := repository.NewGormPointsLogRepository()
	thresholdRepo := repository.NewGormThresholdRepository()

	ledger := service.NewPointsLedger(db, pointsLogRepo)
	thresholdService := service.NewThresholdService(db, thresholdRepo, thresholdCache)
	levelManager := service.NewLevelManager(db, userRepo, ledger, thresholdService, &config.Cfg.Levels)
	completionService := service.NewCompletionService(db, userRepo, courseRepo, completionRepo, ledger, levelManager, thresholdService)
	userService := service.NewUserService(db, userRepo, ledger, thresholdService)
	courseService := service.NewCourseService(db, courseRepo)

	if err := thresholdService.EnsureSeeded(startupCtx, config.Cfg.Levels.Defaults); err != nil {
		slog.Error("Error seeding level thresholds", slog.Any("error", err))
		os.Exit(1)
	}

	completionHandler := handlers.NewCompletionHandler(completionService, courseService)
	profileHandler := handlers.NewProfileHandler(userService, levelManager, ledger, thresholdService)
	adminHandler := handlers.NewAdminHandler(thresholdService, levelManager, userService, completionService, courseService)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	authMiddleware := middleware.JWTAuthMiddleware(&config.Cfg)
	if !config.Cfg.Auth.Enabled {
		slog.Warn("Authentication is disabled, trusting X-User-ID / X-User-Role headers")
		authMiddleware = middleware.DevAuthMiddleware
	}
	handlers.RegisterRoutes(r, authMiddleware, completionHandler, profileHandler, adminHandler)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // 閾値変更時の全ユーザー再計算を含む
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Server exiting")
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/altynbekov/streamflix/config"
	"github.com/altynbekov/streamflix/internal/catalog"
	"github.com/altynbekov/streamflix/internal/email"
	"github.com/altynbekov/streamflix/internal/health"
	"github.com/altynbekov/streamflix/internal/infrastructure/postgres"
	ctxlog "github.com/altynbekov/streamflix/internal/log"
	"github.com/altynbekov/streamflix/internal/metrics"
	"github.com/altynbekov/streamflix/internal/password"
	"github.com/altynbekov/streamflix/internal/token"
	httptransport "github.com/altynbekov/streamflix/internal/transport/http"
	"github.com/altynbekov/streamflix/internal/transport/http/handler"
	"github.com/altynbekov/streamflix/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth core
	userRepo := postgres.NewUserRepository(pool)
	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, codec, sender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, codec.TTL(), logger)

	// Profile
	profileUsecase := usecase.NewProfileUsecase(userRepo)
	profileHandler := handler.NewProfileHandler(profileUsecase, logger)

	// Catalog proxy
	catalogClient, err := catalog.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.CatalogCacheTTL, logger)
	if err != nil {
		stop()
		log.Fatalf("catalog: %v", err)
	}
	catalogHandler := handler.NewCatalogHandler(catalogClient, logger)

	warmer := catalog.NewWarmer(catalogClient, logger)
	if err := warmer.Start(cfg.CatalogCacheTTL / 2); err != nil {
		stop()
		log.Fatalf("catalog warmer: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(pool, catalogClient, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, profileHandler, catalogHandler, codec, userRepo),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	warmer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

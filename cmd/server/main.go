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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/travel_compensation/internal/config"
	"github.com/Skotchmaster/travel_compensation/internal/db"
	"github.com/Skotchmaster/travel_compensation/internal/es"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/metrics"
	loggingmw "github.com/Skotchmaster/travel_compensation/internal/middleware/logging"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
	"github.com/Skotchmaster/travel_compensation/internal/service/search"
	httpserver "github.com/Skotchmaster/travel_compensation/internal/transport/http"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.IsProduction() {
		config.MustNonEmptyBytes(cfg.SecretKey, "SECRET_KEY")
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	gdb, err := db.Open(startCtx, db.Options{Dialect: cfg.DBDialect, SQLDriver: cfg.DBSQLDriver, DSN: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)
	m := metrics.New()

	components := httpserver.Components{
		DB:           gdb,
		APIRoot:      cfg.APIRoot,
		Secret:       cfg.SecretKey,
		BcryptCost:   cfg.BcryptCost,
		TokenTTLDays: cfg.TokenTTLDays,
		Publisher:    prod,
		Metrics:      m,
	}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(startCtx, es.Options{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("es init: %v", err)
		}
		components.Index = search.NewStationIndex(esClient, cfg.ESStationIndex)
	} else {
		logger.Warn("es_disabled", "reason", "ES_URL is empty")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(logger),
		m.Middleware,
		middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSAllowedOrigins}),
	)

	httpserver.Register(e, httpserver.Wire(components))

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_start", "addr", cfg.ServerAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	} else {
		logger.Error("db_handle_failed", "error", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}

	logger.Info("shutdown complete")
}

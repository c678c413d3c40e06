// Package main runs the storefront server: REST API, Prometheus metrics, and
// the static single-page client.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	app "github.com/roleplay-labs/storefront/internal/app"
	"github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/internal/app/economy"
	"github.com/roleplay-labs/storefront/internal/app/economy/memory"
	"github.com/roleplay-labs/storefront/internal/app/httpapi"
	"github.com/roleplay-labs/storefront/internal/app/metrics"
	"github.com/roleplay-labs/storefront/internal/config"
	"github.com/roleplay-labs/storefront/internal/middleware"
	"github.com/roleplay-labs/storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("storefront").WithError(err).Error("load configuration")
		os.Exit(1)
	}

	log := logger.New("storefront", cfg.LogLevel)

	catalogFile, err := config.LoadCatalogOrDefault(cfg.CatalogPath)
	if err != nil {
		log.WithError(err).Error("load catalog")
		os.Exit(1)
	}

	registry := economy.NewRegistry()
	switch strings.ToLower(strings.TrimSpace(cfg.EconomyBackend)) {
	case "memory":
		backend := memory.New()
		seedDevPlayers(backend)
		registry.Set(backend)
		log.Warn("ECONOMY_BACKEND set to memory; using in-memory economy backend with dev players")
	case "":
		log.Warn("ECONOMY_BACKEND not set; purchases unavailable until the host framework attaches a provider")
	default:
		log.WithField("backend", cfg.EconomyBackend).Error("unknown economy backend")
		os.Exit(1)
	}

	application, err := app.New(catalogFile.Flatten(), registry, log)
	if err != nil {
		log.WithError(err).Error("build application")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("start application")
		os.Exit(1)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	stopCleanup := limiter.StartCleanup(time.Minute)
	defer stopCleanup()

	handler := httpapi.NewHandler(application, httpapi.Options{
		WebDir: cfg.WebDir,
		Port:   cfg.Port,
	})
	chain := middleware.CORS(
		limiter.Handler(
			middleware.RequestID(log)(
				metrics.InstrumentHandler(handler),
			),
		),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           chain,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).
			WithField("items", application.Catalog.Len()).
			Info("storefront server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application stop")
	}
}

// seedDevPlayers populates the in-memory backend with sessions for local
// development.
func seedDevPlayers(backend *memory.Backend) {
	backend.AddPlayer(memory.PlayerState{
		Identifier: "steam:dev",
		Name:       "Dev Player",
		Job:        "unemployed",
		JobGrade:   "none",
		Accounts: map[catalog.Currency]int64{
			catalog.CurrencyMoney:      50000,
			catalog.CurrencyBlackMoney: 10000,
			catalog.CurrencyBank:       250000,
		},
	})
	backend.AddPlayer(memory.PlayerState{
		Identifier: "license:broke",
		Name:       "Broke Player",
		Job:        "unemployed",
		JobGrade:   "none",
		Accounts: map[catalog.Currency]int64{
			catalog.CurrencyMoney: 20,
		},
	})
}

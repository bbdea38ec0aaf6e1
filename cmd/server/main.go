package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danukusuma/gerai/internal"
	"github.com/danukusuma/gerai/internal/cart"
	"github.com/danukusuma/gerai/internal/domain"
	"github.com/danukusuma/gerai/internal/events"
	"github.com/danukusuma/gerai/internal/handler/api"
	"github.com/danukusuma/gerai/internal/inventory"
	"github.com/danukusuma/gerai/internal/memory"
	"github.com/danukusuma/gerai/internal/middleware"
	"github.com/danukusuma/gerai/internal/order"
	"github.com/danukusuma/gerai/internal/postgres"
	"github.com/danukusuma/gerai/internal/pricing"
	"github.com/danukusuma/gerai/internal/promo"
	"github.com/danukusuma/gerai/internal/shipping"
	"github.com/danukusuma/gerai/internal/tax"
	"github.com/danukusuma/gerai/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// storefrontStore is everything the API needs from a backing store.
type storefrontStore interface {
	domain.CatalogReader
	domain.InventoryReader
	api.OrderStore
}

func run() error {
	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	policy, err := internal.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return fmt.Errorf("policy load failed: %w", err)
	}
	pricingCfg, err := policy.PricingConfig()
	if err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	// Backing store: postgres in production, memory for development.
	var store storefrontStore
	switch cfg.Store {
	case internal.StorePostgres:
		logger.Info().Msg("connecting to database")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}

		logger.Info().Msg("running database migrations")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		store = postgres.NewStore(pool)
	case internal.StoreMemory:
		logger.Info().Msg("using in-memory store with seed catalog")
		store = seedMemoryStore()
	default:
		return fmt.Errorf("unknown store %q", cfg.Store)
	}

	// Commerce engine.
	engine := pricing.NewEngine(pricingCfg)
	commissions := pricing.NewCalculator(engine, pricingCfg)
	guard := inventory.NewGuard(store)
	agg := cart.NewAggregator(
		store,
		guard,
		engine,
		promo.NewStaticValidator(policy.PromoCodes),
		shipping.NewFlatRateQuoter(policy.FlatShippingCostCents),
		tax.NewPercentageCalculator(policy.TaxRatePercent),
	)
	lifecycle := order.NewLifecycle(agg, guard)

	// Event publisher: NATS when configured, noop otherwise.
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		logger.Info().Str("url", cfg.NatsURL).Msg("connecting to nats")
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			return fmt.Errorf("nats connection failed: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// Metrics.
	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics(registry, "gerai")
	bizMetrics := telemetry.NewMetrics(registry, "gerai")

	// HTTP server.
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(httpMetrics.Middleware())
	e.Use(middleware.RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(httpMetrics.Handler()))

	h := api.NewHandler(logger, store, engine, commissions, agg, lifecycle, store, publisher, bizMetrics)
	h.RegisterRoutes(e)

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("address", addr).Str("store", cfg.Store).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// seedMemoryStore loads a small demo catalog for STORE=memory runs.
func seedMemoryStore() *memory.Store {
	store := memory.NewStore()
	store.PutProduct(domain.Product{
		ID:             "kopi-gayo-1kg",
		Name:           "Kopi Gayo 1kg",
		Category:       "coffee",
		BasePriceCents: 100_000,
		IsActive:       true,
		Features:       []string{"single origin", "medium roast"},
	})
	store.PutProduct(domain.Product{
		ID:             "teh-melati-500g",
		Name:           "Teh Melati 500g",
		Category:       "tea",
		BasePriceCents: 40_000,
		IsActive:       true,
	})
	store.PutProduct(domain.Product{
		ID:             "gula-aren-1kg",
		Name:           "Gula Aren 1kg",
		Category:       "sweetener",
		BasePriceCents: 35_000,
		IsActive:       true,
	})
	store.PutInventory(domain.InventoryRecord{ProductID: "kopi-gayo-1kg", QuantityOnHand: 50})
	store.PutInventory(domain.InventoryRecord{ProductID: "teh-melati-500g", QuantityOnHand: 120})
	store.PutInventory(domain.InventoryRecord{ProductID: "gula-aren-1kg", QuantityOnHand: 80})
	return store
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

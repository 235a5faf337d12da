/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the labor calculation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment, then apply flags
  2. Initialize SQLite store
  3. Load rule books: embedded tables, rules directory, stored documents
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start the reload scheduler and the server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -port    HTTP server port (LABOR_PORT, default: 8080)
  -db      SQLite database path (LABOR_DB, default: labor.db)
           Use ":memory:" for in-memory database
  -rules   Directory of extra rule-set documents (LABOR_RULES_DIR)
  -year    Default rule book year (LABOR_DEFAULT_YEAR)

ENVIRONMENT:
  LABOR_LOG_LEVEL        debug, info, warn, error
  LABOR_LOG_FORMAT       text or json
  LABOR_METRICS          expose /metrics (default: true)
  LABOR_RELOAD_INTERVAL  stored rule book reload interval (default: 5m, 0 disables)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the reload scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/labor.db"

  # Run with in-memory database and JSON logs
  LABOR_LOG_FORMAT=json ./server -db=":memory:"

  # Publish next year's tables from a directory
  ./server -rules=./tables

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Environment configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/labor-engine/api"
	"github.com/warp/labor-engine/config"
	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.RulesDir, "rules", cfg.RulesDir, "directory of extra rule-set documents")
	flag.IntVar(&cfg.DefaultYear, "year", cfg.DefaultYear, "default rule book year")
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	// Rule books: later sources replace earlier ones for the same year.
	registry := factory.NewRegistry(factory.WithStore(store), factory.WithLogger(logger))
	if err := registry.LoadEmbedded(); err != nil {
		return fmt.Errorf("failed to load embedded tables: %w", err)
	}
	if cfg.RulesDir != "" {
		if err := registry.LoadDir(cfg.RulesDir); err != nil {
			return fmt.Errorf("failed to load rules directory: %w", err)
		}
	}
	if err := registry.LoadStore(context.Background()); err != nil {
		return fmt.Errorf("failed to load stored rule books: %w", err)
	}
	if cfg.DefaultYear != 0 {
		if _, err := registry.ForYear(cfg.DefaultYear); err != nil {
			return fmt.Errorf("default year: %w", err)
		}
	}

	// Initialize handler
	opts := []api.Option{
		api.WithCalculationLog(store),
		api.WithHolidayStore(store),
		api.WithLogger(logger),
		api.WithDefaultYear(cfg.DefaultYear),
	}
	if cfg.Metrics {
		opts = append(opts, api.WithMetrics(api.NewMetrics()))
	}
	handler := api.NewHandler(registry, opts...)

	// Create router
	router := api.NewRouter(handler)

	scheduler := api.NewReloadScheduler(handler)
	scheduler.CheckInterval = cfg.ReloadInterval
	scheduler.Enabled = cfg.ReloadInterval > 0
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "years", registry.Years())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

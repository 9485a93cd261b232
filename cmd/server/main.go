// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/api/httpapi"
	"github.com/ajpelaez/hymnbox/internal/app/playback"
	"github.com/ajpelaez/hymnbox/internal/app/session"
	"github.com/ajpelaez/hymnbox/internal/app/skill"
	"github.com/ajpelaez/hymnbox/internal/domain/track"
	"github.com/ajpelaez/hymnbox/internal/infra/config"
	"github.com/ajpelaez/hymnbox/internal/infra/logger"
	"github.com/ajpelaez/hymnbox/internal/infra/store"
)

var (
	app        = kingpin.New("hymnbox-server", "hymnbox playback controller server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	catalog, err := track.Load(cfg.Catalog.Path, cfg.Catalog.Unavailable)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	zlog.Info().Msgf("Loaded catalog: tracks=%d unavailable=%d", catalog.Len(), len(cfg.Catalog.Unavailable))

	st, err := store.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create state store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			zlog.Error().Msgf("Failed to close state store: %v", err)
		}
	}()

	sessions := session.NewManager(st, catalog.Len())
	controller := playback.NewController(catalog, cfg)
	reconciler := playback.NewReconciler(catalog)
	svc := skill.New(sessions, controller, reconciler, cfg)

	api := httpapi.New(svc)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Handler(),
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	return nil
}

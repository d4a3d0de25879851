package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/chazu/cabdrill/pkg/config"
	"github.com/chazu/cabdrill/pkg/kernel/sdfx"
	"github.com/chazu/cabdrill/pkg/logging"
)

func main() {
	// Overload lets a local .env win over the shell environment.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"catalog_path", cfg.Catalog.Path,
		"mesh_cells", cfg.Preview.MeshCells,
	)

	app, err := newAppFromConfig(cfg)
	if err != nil {
		slog.Error("failed to initialise app", "error", err)
		os.Exit(1)
	}
	slog.Info("catalogs ready",
		"hardware", len(app.Hardware()),
		"templates", len(app.Templates()),
	)

	server := NewServer(app, cfg.Server)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newAppFromConfig builds an App with the configured mesh resolution and
// catalog evaluation limit, loading CATALOG_PATH when set.
func newAppFromConfig(cfg *config.Config) (*App, error) {
	app := NewApp()
	app.kernel = sdfx.NewWithCells(cfg.Preview.MeshCells)
	app.engine.WithTimeout(cfg.Catalog.EvalTimeout)

	if cfg.Catalog.Path == "" {
		return app, nil
	}
	res, err := app.LoadCatalogFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded",
		"path", cfg.Catalog.Path,
		"hardware", res.Hardware,
		"templates", res.Templates,
	)
	return app, nil
}

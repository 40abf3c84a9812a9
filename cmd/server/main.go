package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/mcp"
	"github.com/mergington/activities/internal/memory"
	"github.com/mergington/activities/internal/sqlite"
	"github.com/mergington/activities/internal/transport"
	"github.com/mergington/activities/web"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred closes always execute.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
		defer rotator.Close()
		logWriter = rotator
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	seed := activity.DefaultCatalog()
	if cfg.Seed.Path != "" {
		seed, err = activity.LoadSeedFile(cfg.Seed.Path)
		if err != nil {
			logger.Error("failed to load seed", "path", cfg.Seed.Path, "error", err)
			return err
		}
	}

	repo, closeRepo, err := openRepository(cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		return err
	}
	defer closeRepo()

	activitySvc := activity.NewService(repo, logger)
	if err := activitySvc.Seed(context.Background(), seed); err != nil {
		logger.Error("failed to seed activities", "error", err)
		return err
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Activities: activitySvc,
		Logger:     logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(logger, mcpServer)
	}

	static, err := staticFS(cfg.Static.Dir)
	if err != nil {
		logger.Error("failed to open static dir", "dir", cfg.Static.Dir, "error", err)
		return err
	}

	opts := transport.Options{
		Logger: logger,
		Static: static,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		),
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = transport.NewMetrics()
	}

	return runHTTPMode(logger, transport.NewServer(activitySvc, opts), cfg.Server.Host, cfg.Server.Port)
}

// openRepository builds the configured registry backend. The SQLite store
// is migrated here and reseeded by the caller, so it never carries state
// across restarts.
func openRepository(store config.StoreConfig) (activity.Repository, func(), error) {
	if store.Driver != "sqlite" {
		return memory.NewRegistry(), func() {}, nil
	}

	db, err := sqlite.New(store.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlite.NewActivityRepository(db), func() { db.Close() }, nil
}

func staticFS(dir string) (fs.FS, error) {
	if dir == "" {
		return web.Static(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	return nil
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return waitForShutdown(logger, httpServer, serveErr)
}

// waitForShutdown blocks until a signal arrives or the listener fails.
func waitForShutdown(logger *slog.Logger, server *http.Server, serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", "error", err)
		}
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

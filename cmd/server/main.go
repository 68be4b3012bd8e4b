package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/rpggio/signage/internal/compiler"
	"github.com/rpggio/signage/internal/config"
	"github.com/rpggio/signage/internal/delivery"
	"github.com/rpggio/signage/internal/directory"
	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/lastgood"
	"github.com/rpggio/signage/internal/mcp"
	"github.com/rpggio/signage/internal/seed"
	"github.com/rpggio/signage/internal/sqlite"
	"github.com/rpggio/signage/internal/surreal"
	"github.com/rpggio/signage/internal/transport"
	"github.com/rpggio/signage/internal/validator"
)

func main() {
	configPath := pflag.String("config", "", "path to YAML config (overrides SIGNAGE_CONFIG_PATH)")
	seedPath := pflag.String("seed", "", "fixture file (.yaml, .json, .jsonc) applied at startup")
	mode := pflag.String("mode", "", "transport mode: http or stdio (overrides config)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Transport.Mode = *mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	cache, err := openCache(cfg.Kiosk.FallbackPath, logger)
	if err != nil {
		logger.Error("failed to open last-good store", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	projectRepo := sqlite.NewProjectRepository(db)
	mediaRepo := sqlite.NewMediaRepository(db)
	playlistRepo := sqlite.NewPlaylistRepository(db)
	providerRepo := sqlite.NewProviderRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	updateRepo := sqlite.NewBuildingUpdateRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	activitySvc := activity.NewService(activityRepo, logger)
	projectSvc := project.NewService(projectRepo, logger)
	providerSvc := provider.NewService(providerRepo, projectRepo, activitySvc, logger)
	categorySvc := category.NewService(categoryRepo, projectRepo, activitySvc, logger)
	refs := validator.New(providerRepo, projectRepo, cfg.Engine.LookupTimeout, logger)
	mediaSvc := media.NewService(mediaRepo, projectRepo, refs, activitySvc, logger)
	playlistSvc := playlist.NewService(playlistRepo, mediaRepo, projectRepo, activitySvc, logger)
	updateSvc := buildingupdate.NewService(updateRepo, projectRepo, activitySvc, logger)

	// Editor writes always land in SQLite. Resolution reads from the
	// configured driver.
	sources := compiler.Sources{
		Projects:   projectRepo,
		Slots:      playlistRepo,
		Media:      mediaRepo,
		Categories: categoryRepo,
	}
	var (
		kioskProjects  project.Reader        = projectRepo
		kioskProviders provider.Reader       = providerRepo
		kioskUpdates   buildingupdate.Reader = updateRepo
	)
	if cfg.DB.Driver == config.DriverSurrealDB {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Engine.FetchTimeout)
		store, err := surreal.Open(ctx, surreal.Config{
			URL:       cfg.Surreal.URL,
			Namespace: cfg.Surreal.Namespace,
			Database:  cfg.Surreal.Database,
			Username:  cfg.Surreal.Username,
			Password:  cfg.Surreal.Password,
		})
		cancel()
		if err != nil {
			logger.Error("failed to open surrealdb", "error", err)
			os.Exit(1)
		}
		defer store.Close(context.Background())
		sources = compiler.Sources{
			Projects:   store.Projects(),
			Slots:      store.Slots(),
			Media:      store.Media(),
			Categories: store.Categories(),
		}
		kioskProjects = store.Projects()
		kioskProviders = store.Providers()
		kioskUpdates = store.BuildingUpdates()
		logger.Info("resolving from surrealdb", "url", cfg.Surreal.URL)
	}

	engine := compiler.New(sources, cfg.Engine.FetchTimeout, logger)
	deliverySvc := delivery.NewService(kioskProjects, engine, cache, delivery.Options{
		Attempts:  cfg.Engine.RetryAttempts,
		BaseDelay: cfg.Engine.RetryBaseDelay,
	}, logger)
	directorySvc := directory.NewService(kioskProjects, kioskProviders, kioskUpdates, logger)

	if *seedPath != "" {
		if err := applySeed(*seedPath, seed.Services{
			Projects:   projectSvc,
			Providers:  providerSvc,
			Categories: categorySvc,
			Media:      mediaSvc,
			Playlist:   playlistSvc,
			Updates:    updateSvc,
		}, logger); err != nil {
			logger.Error("failed to apply seed", "path", *seedPath, "error", err)
			os.Exit(1)
		}
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:   projectSvc,
			Providers:  providerSvc,
			Media:      mediaSvc,
			Playlist:   playlistSvc,
			Categories: categorySvc,
			Updates:    updateSvc,
			Activity:   activitySvc,
			Compiler:   engine,
		},
		Resolver:      apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	var kioskAuth func(http.Handler) http.Handler
	if cfg.Kiosk.Token != "" {
		kioskAuth = transport.AuthMiddleware(transport.StaticToken(cfg.Kiosk.Token))
	} else {
		logger.Warn("kiosk token not set, kiosk endpoints are unauthenticated")
	}
	runHTTPMode(logger, transport.Options{
		Playlists: deliverySvc,
		Directory: directorySvc,
		KioskAuth: kioskAuth,
		Logger:    logger,
	}, mcpServer, cfg.Server.Host, cfg.Server.Port)
}

func openCache(dir string, logger *slog.Logger) (*lastgood.Store, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return lastgood.Open(dir, logger)
}

func applySeed(path string, svc seed.Services, logger *slog.Logger) error {
	fixture, err := seed.ReadFile(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	summary, err := seed.Apply(ctx, svc, fixture, logger)
	if err != nil {
		return err
	}
	logger.Info("seed applied",
		"projects", summary.Projects,
		"projects_skipped", summary.ProjectsSkipped,
		"media", summary.Media,
		"unverified", summary.Unverified,
		"slots", summary.Slots,
		"building_updates", summary.Updates,
	)
	return nil
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, opts transport.Options, mcpServer *sdkmcp.Server, host string, port int) {
	opts.MCP = sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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

// maxLogSizeBytes is the size at which the log file rotates to path.1.
const maxLogSizeBytes = 5 * 1024 * 1024

// logFileWriter appends to a log file and keeps one rotated generation.
type logFileWriter struct {
	mu   sync.Mutex
	path string
	file *os.File
	size int64
}

func newLogFileWriter(path string) (*logFileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	w := &logFileWriter{path: path}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *logFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *logFileWriter) open() error {
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	w.file = file
	w.size = info.Size()
	return nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > maxLogSizeBytes {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *logFileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(w.path, w.path+".1"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return w.open()
}

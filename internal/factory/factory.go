package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/exhibitkit/showroom/internal/api/stream"
	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/catalog"
	"github.com/exhibitkit/showroom/internal/dependencies/clock"
	"github.com/exhibitkit/showroom/internal/loader"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/auth"
	"github.com/exhibitkit/showroom/internal/services/library"
	"github.com/exhibitkit/showroom/internal/services/playback"
	"github.com/exhibitkit/showroom/internal/services/screen"
	"github.com/exhibitkit/showroom/internal/services/tour"
	"github.com/exhibitkit/showroom/internal/storage"
	filestorage "github.com/exhibitkit/showroom/internal/storage/file"
	"github.com/exhibitkit/showroom/internal/storage/memory"
	redisstorage "github.com/exhibitkit/showroom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Core plumbing
	Loop    *runloop.Loop
	Bus     *bus.Bus
	Clock   clock.Clock
	Catalog *catalog.Catalog
	Loader  *loader.Service
	Storage storage.Store

	// Services
	AuthService *auth.Service
	Navigator   *screen.Navigator
	Library     *library.Session
	Playback    *playback.Session
	Tour        *tour.Orchestrator

	// Event streaming
	Hub *stream.Hub

	subs []*bus.Subscription
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// CatalogPath is the path to the TOML resource catalog (optional)
	// If empty, the built-in defaults are used
	CatalogPath string
	// AssetRoot is the directory local assets are loaded from
	AssetRoot string
	// BundleBaseURL is the remote endpoint bundles are fetched from
	BundleBaseURL string
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// UserDataPath is the user document location (required if StorageType is "file")
	UserDataPath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LoopConfig holds run loop settings (optional)
	// If zero value, defaults to runloop.DefaultConfig()
	LoopConfig runloop.Config
	// TourConfig holds showroom tour settings (optional)
	// If zero value, defaults to tour.DefaultConfig()
	TourConfig tour.Config
}

// New creates a new application with all dependencies wired. The run
// loop is created but not started; the caller owns Run and Stop.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.UserDataPath == "" {
			return nil, errors.New("UserDataPath required when StorageType is file")
		}
		store = filestorage.New(cfg.UserDataPath)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	loopCfg := cfg.LoopConfig
	if loopCfg.TickInterval == 0 {
		loopCfg = runloop.DefaultConfig()
	}

	tourCfg := cfg.TourConfig
	if tourCfg.TeleportPause == 0 {
		tourCfg = tour.DefaultConfig()
	}

	clk := clock.New()
	transport := loader.NewHTTPTransport(cfg.BundleBaseURL)

	app, err := newWithDependencies(store, clk, cat, transport, cfg.AssetRoot, loopCfg, tourCfg, logger)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	cat *catalog.Catalog,
	transport loader.Transport,
	assetRoot string,
	loopCfg runloop.Config,
	tourCfg tour.Config,
	logger *slog.Logger,
) (*App, error) {
	loop := runloop.New(loopCfg, logger)
	eventBus := bus.New(clk, logger)
	loaderService := loader.New(cat, transport, loop, eventBus, assetRoot, logger)

	authService := auth.New(store, eventBus, logger)
	if err := authService.Load(context.Background()); err != nil {
		return nil, err
	}

	navigator := screen.New(eventBus, logger)
	playbackSession := playback.New(loop, eventBus, logger)
	librarySession := library.New(loaderService, eventBus, playbackSession, logger)
	tourOrchestrator := tour.New(loaderService, loop, eventBus, tourCfg, logger)

	hub := stream.NewHub(logger)
	hub.Attach(eventBus)

	app := &App{
		Loop:        loop,
		Bus:         eventBus,
		Clock:       clk,
		Catalog:     cat,
		Loader:      loaderService,
		Storage:     store,
		AuthService: authService,
		Navigator:   navigator,
		Library:     librarySession,
		Playback:    playbackSession,
		Tour:        tourOrchestrator,
		Hub:         hub,
	}

	// Entering a project kicks off that project's loading.
	app.subs = append(app.subs,
		eventBus.Subscribe(model.EventProject1Chosen, func(model.Event) {
			librarySession.Load()
		}),
		eventBus.Subscribe(model.EventProject2Chosen, func(model.Event) {
			if err := tourOrchestrator.Build(); err != nil {
				logger.Error("showroom build failed", slog.Any("error", err))
			}
		}),
	)

	return app, nil
}

// Close tears down the app's subscriptions, sessions and run loop
func (a *App) Close() {
	bus.CloseAll(a.subs)
	a.Navigator.Close()
	a.Library.Close()
	a.Playback.Close()
	a.Hub.Close()
	a.Loop.Stop()
}

package factory

import (
	"errors"
	"io"
	"log/slog"

	"wordduel/internal/dependencies/clock"
	"wordduel/internal/dependencies/ids"
	"wordduel/internal/services/dictionary"
	"wordduel/internal/services/match"
	"wordduel/internal/services/registry"
	"wordduel/internal/services/scoring"
	"wordduel/internal/storage"
	"wordduel/internal/storage/memory"
	redisstorage "wordduel/internal/storage/redis"
	"wordduel/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Source

	// Services
	DictionaryService  *dictionary.Service
	ScoringService     *scoring.Service
	MatchController    *match.Controller
	RegistryController *registry.Controller
	Gateway            *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	src := ids.New()

	return newWithDependencies(store, clk, src, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, src ids.Source, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	scoringService := scoring.New()
	registryController := registry.NewController(store, clk, src, logger)
	matchController := match.NewController(store, dictService, scoringService, clk, logger)
	gateway := ws.NewGateway(registryController, matchController, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		IDs:                src,
		DictionaryService:  dictService,
		ScoringService:     scoringService,
		MatchController:    matchController,
		RegistryController: registryController,
		Gateway:            gateway,
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/SkyDeskLabs/SkyDesk/internal/api"
	"github.com/SkyDeskLabs/SkyDesk/internal/booking"
	"github.com/SkyDeskLabs/SkyDesk/internal/cache"
	"github.com/SkyDeskLabs/SkyDesk/internal/flow"
	"github.com/SkyDeskLabs/SkyDesk/internal/nlu"
	"github.com/SkyDeskLabs/SkyDesk/internal/recommend"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for SkyDesk state data
	DefaultStateDir = "/var/lib/skydesk"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "skydesk.db"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Build the storage, cache, and NLU layers
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	c, err := buildCache(flags)
	if err != nil {
		slog.Error("Failed to connect cache", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	classifier := buildClassifier(flags)

	// Wire the dispatcher
	states := flow.NewSessionStateManager(st, c)
	bookings := booking.NewService(st, nil)
	dispatcher := flow.NewDispatcher(states, bookings, recommend.NewEngine(st), classifier)

	server := api.NewServer(api.Config{
		Dispatcher: dispatcher,
		Classifier: classifier,
		Store:      st,
		Cache:      c,
		Addr:       *flags.apiAddr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping SkyDesk with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr)
	if err := server.Run(ctx); err != nil {
		slog.Error("SkyDesk failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("SkyDesk exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseDSN string
	StateDir    string
	RedisAddr   string
	OpenAIKey   string
	APIAddr     string
}

// Flags holds command line flag values
type Flags struct {
	stateDir  *string
	dbDSN     *string
	redisAddr *string
	openaiKey *string
	apiAddr   *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		StateDir:    os.Getenv("SKYDESK_STATE_DIR"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		APIAddr:     os.Getenv("API_ADDR"),
	}

	// Honor the legacy DATABASE_URL name when DATABASE_DSN is unset
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = os.Getenv("DATABASE_URL")
	}

	// Set default state directory if not specified
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No SKYDESK_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	} else {
		slog.Debug("SKYDESK_STATE_DIR found in environment", "state_dir", config.StateDir)
	}

	// If no database DSN is provided, default to SQLite in the state directory
	if config.DatabaseDSN == "" {
		config.DatabaseDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseDSN)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_DSN_SET", config.DatabaseDSN != "",
		"SKYDESK_STATE_DIR", config.StateDir,
		"REDIS_ADDR", config.RedisAddr,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:  flag.String("state-dir", config.StateDir, "state directory for SkyDesk data (overrides $SKYDESK_STATE_DIR)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseDSN, "database DSN: file path for SQLite or connection string for PostgreSQL (overrides $DATABASE_DSN or $DATABASE_URL)"),
		redisAddr: flag.String("redis-addr", config.RedisAddr, "Redis address for the workflow cache; empty uses the in-process cache (overrides $REDIS_ADDR)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for intent classification; empty uses the keyword classifier (overrides $OPENAI_API_KEY)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"redisAddr", *flags.redisAddr,
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseDSN && config.DatabaseDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "dsn_updated", true, "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// buildStore opens the PostgreSQL or SQLite store depending on the DSN shape
func buildStore(flags Flags) (store.Store, error) {
	if store.DetectDSNType(*flags.dbDSN) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_type", "postgresql", "dsn_set", true)
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "dsn_type", "sqlite", "db_path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
}

// buildCache connects to Redis when an address is configured, otherwise uses
// the in-process cache
func buildCache(flags Flags) (cache.Cache, error) {
	if *flags.redisAddr != "" {
		slog.Debug("Configuring Redis workflow cache", "addr", *flags.redisAddr)
		return cache.NewRedisCache(cache.RedisConfig{Addr: *flags.redisAddr})
	}
	slog.Debug("No Redis address provided, using in-process workflow cache")
	return cache.NewMemoryCache(), nil
}

// buildClassifier selects the OpenAI classifier when a key is configured,
// otherwise falls back to the keyword classifier
func buildClassifier(flags Flags) nlu.Classifier {
	if *flags.openaiKey != "" {
		slog.Debug("Configuring OpenAI intent classifier")
		return nlu.NewOpenAIClassifier(*flags.openaiKey)
	}
	slog.Debug("No OpenAI API key provided, using keyword classifier")
	return nlu.NewKeywordClassifier()
}

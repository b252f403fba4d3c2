// Package cli provides the command-line interface for sercha-media.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/remote"
	"github.com/custodia-labs/sercha-media/internal/adapters/driven/config/file"
	storagememory "github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-media/internal/core/services"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// envPrefix prefixes every environment override.
const envPrefix = "SERCHA_MEDIA_"

// Command annotations read by bootstrap.
const (
	// skipBootstrap marks commands that run without the configured services.
	skipBootstrap = "skip-bootstrap"

	// settingsOnly marks commands that need only the settings service.
	settingsOnly = "settings-only"
)

var version = "dev"

var (
	verbose   bool
	configDir string
	sessionID string
)

// Services used by the commands. Set by bootstrap, or directly by tests.
var (
	searchService   driving.SearchService
	ratingService   driving.RatingService
	feedbackService driving.FeedbackService
	detailService   driving.DetailService
	settingsService driving.SettingsService
	sessionCache    *services.SessionCache
)

// cleanups run in reverse order when the process finishes.
var cleanups []func() error

// logToFile is set when log output goes to the configured log file.
var logToFile bool

var rootCmd = &cobra.Command{
	Use:   "sercha-media",
	Short: "Search a series catalogue from the terminal",
	Long: `sercha-media searches a TV series catalogue served by a search backend.

Build a query from title, overview, genre and actor filters, rate results
with one to five stars, and refine the ranking with like/dislike feedback.
Run without a subcommand, or with 'tui', for the interactive interface.

Commands that share a session (search, then rate, feedback or detail) need
the same --session id and a persistent session backend (sqlite or redis).`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sercha-media)")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "session id (default: a new id per run)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases everything bootstrap opened.
func Execute(ctx context.Context) error {
	defer runCleanups()
	return rootCmd.ExecuteContext(ctx)
}

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](); err != nil {
			logger.Warn("cleanup: %v", err)
		}
	}
	cleanups = nil
}

// bootstrap wires configuration, logging, the session store and the
// services. Services already set (by tests) are kept.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	onlySettings := cmd.Annotations[settingsOnly] == "true"
	if settingsService != nil && (onlySettings || searchService != nil) {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Reading .env: %v", err)
	}
	if dir := os.Getenv(envPrefix + "CONFIG_DIR"); dir != "" && configDir == "" {
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsSvc := services.NewSettingsService(store)
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settingsService = settingsSvc
	if onlySettings {
		return nil
	}
	applyEnv(settings)

	if err := configureLogging(settings.Log); err != nil {
		return err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if settings.Session.Dir == "" {
		settings.Session.Dir = configDir
		if settings.Session.Dir == "" {
			if settings.Session.Dir, err = file.DefaultDir(); err != nil {
				return fmt.Errorf("resolving session dir: %w", err)
			}
		}
	}
	sessionStore, err := openSessionStore(ctx, settings.Session, sessionID)
	if err != nil {
		return err
	}
	logger.Debug("Session %s using %s store", sessionID, settings.Session.Backend)

	backend := remote.NewClient(remote.Config{
		BaseURL: settings.Backend.URL,
		Timeout: settings.Backend.Timeout(),
		RateLimit: remote.RateLimitConfig{
			RequestsPerSecond: settings.Backend.RatePerSecond,
			BurstSize:         remote.DefaultRateLimit.BurstSize,
		},
	})
	logger.Debug("Search backend at %s", settings.Backend.URL)

	wireServices(backend, sessionStore)
	return nil
}

// wireServices builds the core services over a backend and a session store.
func wireServices(backend driven.SearchBackend, store driven.SessionStore) {
	sessionCache = services.NewSessionCache(store)
	searchService = services.NewSearchService(backend, sessionCache)
	ratingService = services.NewRatingService(backend)
	feedbackService = services.NewFeedbackService(backend, sessionCache)
	detailService = services.NewDetailService(sessionCache)
}

// applyEnv overrides settings from SERCHA_MEDIA_* variables. Overrides are
// not persisted.
func applyEnv(s *domain.AppSettings) {
	if v := os.Getenv(envPrefix + "BACKEND_URL"); v != "" {
		s.Backend.URL = v
	}
	if v := os.Getenv(envPrefix + "BACKEND_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(envPrefix + "SESSION_BACKEND"); v != "" {
		if b := domain.SessionBackend(v); b.IsValid() {
			s.Session.Backend = b
		}
	}
	if v := os.Getenv(envPrefix + "REDIS_URL"); v != "" {
		s.Session.RedisURL = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		s.Log.File = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		if f := domain.LogFormat(v); f.IsValid() {
			s.Log.Format = f
		}
	}
}

func configureLogging(s domain.LogSettings) error {
	logger.SetFormat(string(s.Format))
	if s.File == "" {
		return nil
	}
	closeLog, err := logger.OpenFile(s.File)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, closeLog)
	logToFile = true
	return nil
}

// openSessionStore opens the configured session store and registers its cleanup.
func openSessionStore(ctx context.Context, s domain.SessionSettings, id string) (driven.SessionStore, error) {
	switch s.Backend {
	case domain.SessionBackendSQLite:
		db, err := sqlite.NewStore(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening session database: %w", err)
		}
		cleanups = append(cleanups, db.Close)
		if ttl := s.TTL(); ttl > 0 {
			n, err := db.PruneSessions(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.Warn("Pruning sessions: %v", err)
			} else if n > 0 {
				logger.Debug("Pruned %d expired session slots", n)
			}
		}
		return db.SessionStore(id), nil

	case domain.SessionBackendRedis:
		if s.RedisURL == "" {
			return nil, fmt.Errorf("session.redis_url is not set: %w", domain.ErrInvalidInput)
		}
		store, err := redis.NewSessionStore(ctx, s.RedisURL, id, s.TTL())
		if err != nil {
			return nil, fmt.Errorf("connecting session store: %w", err)
		}
		cleanups = append(cleanups, store.Close)
		return store, nil

	case domain.SessionBackendMemory:
		return storagememory.NewSessionStore(), nil
	}
	return nil, fmt.Errorf("unknown session backend %q: %w", s.Backend, domain.ErrInvalidInput)
}

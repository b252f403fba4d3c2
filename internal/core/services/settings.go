package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBackendURL      = "backend.url"
	keyBackendTimeout  = "backend.timeout_seconds"
	keyBackendRate     = "backend.rate_per_second"
	keySessionBackend  = "session.backend"
	keySessionDir      = "session.dir"
	keySessionRedisURL = "session.redis_url"
	keySessionTTL      = "session.ttl_minutes"
	keyFormGenres      = "form.genres"
	keyFormActors      = "form.actors"
	keyLogFile         = "log.file"
	keyLogFormat       = "log.format"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:            s.getString(keyBackendURL, defaults.Backend.URL),
			TimeoutSeconds: s.getInt(keyBackendTimeout, defaults.Backend.TimeoutSeconds),
			RatePerSecond:  s.getFloat(keyBackendRate, defaults.Backend.RatePerSecond),
		},
		Session: domain.SessionSettings{
			Backend:    s.getSessionBackend(defaults.Session.Backend),
			Dir:        s.configStore.GetString(keySessionDir), // Empty means the config directory
			RedisURL:   s.configStore.GetString(keySessionRedisURL),
			TTLMinutes: s.getInt(keySessionTTL, defaults.Session.TTLMinutes),
		},
		Form: domain.FormSettings{
			Genres: s.getStrings(keyFormGenres, defaults.Form.Genres),
			Actors: s.getStrings(keyFormActors, defaults.Form.Actors),
		},
		Log: domain.LogSettings{
			File:   s.configStore.GetString(keyLogFile),
			Format: s.getLogFormat(defaults.Log.Format),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyBackendURL, settings.Backend.URL},
		{keyBackendTimeout, settings.Backend.TimeoutSeconds},
		{keyBackendRate, settings.Backend.RatePerSecond},
		{keySessionBackend, settings.Session.Backend.String()},
		{keySessionDir, settings.Session.Dir},
		{keySessionRedisURL, settings.Session.RedisURL},
		{keySessionTTL, settings.Session.TTLMinutes},
		{keyFormGenres, settings.Form.Genres},
		{keyFormActors, settings.Form.Actors},
		{keyLogFile, settings.Log.File},
		{keyLogFormat, string(settings.Log.Format)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for the given key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyBackendURL, keySessionDir, keySessionRedisURL, keyLogFile:
		parsed = value
	case keyBackendTimeout, keySessionTTL:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case keyBackendRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case keySessionBackend:
		b := domain.SessionBackend(value)
		if !b.IsValid() {
			return fmt.Errorf("invalid session backend %q: %w", value, domain.ErrInvalidInput)
		}
		parsed = b.String()
	case keyLogFormat:
		f := domain.LogFormat(value)
		if !f.IsValid() {
			return fmt.Errorf("invalid log format %q: %w", value, domain.ErrInvalidInput)
		}
		parsed = string(f)
	case keyFormGenres, keyFormActors:
		parsed = splitList(value)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyBackendURL, keyBackendTimeout, keyBackendRate,
		keySessionBackend, keySessionDir, keySessionRedisURL, keySessionTTL,
		keyFormGenres, keyFormActors,
		keyLogFile, keyLogFormat,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat64(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSessionBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	b := domain.SessionBackend(s.configStore.GetString(keySessionBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getLogFormat(defaultVal domain.LogFormat) domain.LogFormat {
	f := domain.LogFormat(s.configStore.GetString(keyLogFormat))
	if !f.IsValid() {
		return defaultVal
	}
	return f
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

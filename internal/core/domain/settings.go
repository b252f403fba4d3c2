package domain

import "time"

const unknownDescription = "Unknown"

// SessionBackend selects where the session-scoped cache lives.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendMemory keeps the cache in process memory.
	// It lives exactly as long as one TUI session.
	SessionBackendMemory SessionBackend = "memory"

	// SessionBackendSQLite keeps the cache in a local SQLite file so that
	// separate CLI invocations sharing a session id see the same cache.
	SessionBackendSQLite SessionBackend = "sqlite"

	// SessionBackendRedis keeps the cache in Redis with a TTL.
	SessionBackendRedis SessionBackend = "redis"
)

// IsValid returns true if the session backend is recognised.
func (b SessionBackend) IsValid() bool {
	switch b {
	case SessionBackendMemory, SessionBackendSQLite, SessionBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SessionBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SessionBackend) Description() string {
	switch b {
	case SessionBackendMemory:
		return "Memory (single process)"
	case SessionBackendSQLite:
		return "SQLite (shared by CLI invocations)"
	case SessionBackendRedis:
		return "Redis (shared, expiring)"
	default:
		return unknownDescription
	}
}

// LogFormat selects the log encoding.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// BackendSettings configures the search backend connection.
type BackendSettings struct {
	// URL is the base URL of the search service.
	URL string

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int

	// RatePerSecond throttles average-rating lookups.
	RatePerSecond float64
}

// Timeout returns the request timeout as a duration.
func (s BackendSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SessionSettings configures the session-scoped cache.
type SessionSettings struct {
	Backend SessionBackend

	// Dir holds the SQLite session database.
	Dir string

	// RedisURL is used by the Redis backend.
	RedisURL string

	// TTLMinutes bounds how long a Redis session survives without writes.
	TTLMinutes int
}

// TTL returns the session lifetime as a duration.
func (s SessionSettings) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// FormSettings configures the options offered by the search form.
type FormSettings struct {
	Genres []string
	Actors []string
}

// LogSettings configures logging.
type LogSettings struct {
	// File receives log output. Empty means stderr.
	File   string
	Format LogFormat
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Backend BackendSettings
	Session SessionSettings
	Form    FormSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL:            "http://localhost:8088",
			TimeoutSeconds: 30,
			RatePerSecond:  20,
		},
		Session: SessionSettings{
			Backend:    SessionBackendMemory,
			TTLMinutes: 60,
		},
		Form: FormSettings{
			Genres: DefaultGenres,
		},
		Log: LogSettings{
			Format: LogFormatConsole,
		},
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates everything main needs to wire the service. Values come
// from the environment so deployments stay twelve-factor; a local .env file
// is loaded when present.
type Config struct {
	Server   Server
	Event    Event
	Storage  Storage
	Postgres Postgres
	Redis    Redis
	Sheets   Sheets
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr             string
	AdminToken       string
	StrictDuplicates bool
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
}

// Event describes the event the service is checking people into.
type Event struct {
	// BaseURL is the public origin encoded into QR verification URLs.
	BaseURL string
	// Venues is the display list of checkpoints offered to staff. The
	// verification core never validates against it: a venue is an opaque
	// label.
	Venues []string
}

// Storage selects the backing store for both collections. CheckinBackend
// may override the ledger independently (e.g. redis ledger over postgres
// attendees).
type Storage struct {
	Backend        string
	CheckinBackend string
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
	BackendRedis    = "redis"
)

// Postgres holds the pgx pool DSN.
type Postgres struct {
	URL string
}

// Redis holds connection tuning for the optional redis ledger.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Sheets points at the spreadsheet the original deployment persisted to.
type Sheets struct {
	CredentialsFile string
	SpreadsheetID   string
	AttendeesSheet  string
	CheckinsSheet   string
}

// FromEnv builds the full config from environment variables so main stays
// lean. Defaults favor a zero-dependency local run (memory stores).
func FromEnv() Config {
	// Ignore a missing .env; the environment may be set directly.
	_ = godotenv.Load()

	return Config{
		Server: Server{
			Addr:             envOr("GATEPASS_ADDR", ":8080"),
			AdminToken:       os.Getenv("GATEPASS_ADMIN_TOKEN"),
			StrictDuplicates: envBool("CHECKIN_STRICT_DUPLICATES"),
			RequestTimeout:   envDuration("GATEPASS_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout:  envDuration("GATEPASS_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Event: Event{
			BaseURL: envOr("EVENT_BASE_URL", "http://localhost:8080/verify"),
			Venues:  splitList(os.Getenv("EVENT_VENUES")),
		},
		Storage: Storage{
			Backend:        envOr("STORAGE_BACKEND", BackendMemory),
			CheckinBackend: os.Getenv("CHECKIN_BACKEND"),
		},
		Postgres: Postgres{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Sheets: Sheets{
			CredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			AttendeesSheet:  envOr("SHEETS_ATTENDEES_SHEET", "attendees"),
			CheckinsSheet:   envOr("SHEETS_CHECKINS_SHEET", "checkins"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

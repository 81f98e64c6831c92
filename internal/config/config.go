package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DefaultAdminCode is used when ADMIN_CODE is unset. It exists so a
// fresh install is usable, and startup logs a warning whenever it is
// in effect.
const DefaultAdminCode = "0000"

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable, read once at startup and
// treated as immutable afterwards.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	SpreadsheetID   string        // id of the backing Google spreadsheet
	CredentialsFile string        // service-account credential file ("" = ADC)
	StoreTimeout    time.Duration // per-call timeout for spreadsheet requests

	AdminCode string // shared administrator passphrase

	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	UsersCacheTTL   time.Duration // read-cache TTL for the users table
	WeightsCacheTTL time.Duration // read-cache TTL for the weights table
}

// Load reads configuration from environment variables. Required
// variables are enforced by must() and missing values cause the
// program to exit with a fatal log message; the rest fall back to
// documented defaults.
func Load() Config {
	cfg := Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "8080"),
		SpreadsheetID:   must("SHEETS_SPREADSHEET_ID"),
		CredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"), // empty = Application Default Credentials
		StoreTimeout:    envDur("SHEETS_TIMEOUT", 10*time.Second),
		AdminCode:       getenv("ADMIN_CODE", DefaultAdminCode),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays:  envInt("REFRESH_TOKEN_TTL_DAYS", 14),
		BcryptCost:      envInt("BCRYPT_COST", 10),
		UsersCacheTTL:   envDur("USERS_CACHE_TTL", 60*time.Second),
		WeightsCacheTTL: envDur("WEIGHTS_CACHE_TTL", 30*time.Second),
	}
	if cfg.AdminCode == DefaultAdminCode {
		log.Printf("warning: ADMIN_CODE is unset, using the default code")
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

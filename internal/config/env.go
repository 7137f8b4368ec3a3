package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds application configuration loaded from the environment.
type Env struct {
	AppAddr string
	GinMode string

	DBDriver string // "sqlite" or "mysql"
	DBPath   string // sqlite file path (":memory:" allowed)
	DBHost   string
	DBUser   string
	DBPass   string
	DBName   string

	JWTSecret string

	// DemoMode makes the auth middleware fall back to the seeded demo
	// user when no valid token is presented.
	DemoMode bool
	// DemoFallback makes schedule search fabricate demo rows when the
	// query matches nothing. Never enable outside demos.
	DemoFallback bool

	MaxSeatsPerBooking int

	BookingTTL    time.Duration
	SweepInterval time.Duration
	TrackInterval time.Duration
}

// LoadEnv reads configuration from the environment. A .env file is
// loaded first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:            getStr("APP_ADDR", ":8080"),
		GinMode:            getStr("GIN_MODE", ""),
		DBDriver:           getStr("DB_DRIVER", "sqlite"),
		DBPath:             getStr("DB_PATH", "./abc_bus.db"),
		DBHost:             getStr("DB_HOST", "127.0.0.1:3306"),
		DBUser:             getStr("DB_USER", "root"),
		DBPass:             getStr("DB_PASS", ""),
		DBName:             getStr("DB_NAME", "abc_bus"),
		JWTSecret:          getStr("JWT_SECRET", "abc-bus-secret-key"),
		DemoMode:           getBool("DEMO_MODE", true),
		DemoFallback:       getBool("DEMO_FALLBACK", false),
		MaxSeatsPerBooking: getInt("MAX_SEATS_PER_BOOKING", 4),
		BookingTTL:         getDuration("BOOKING_TTL", 15*time.Minute),
		SweepInterval:      getDuration("SWEEP_INTERVAL", time.Minute),
		TrackInterval:      getDuration("TRACK_INTERVAL", 5*time.Second),
	}
}

func getStr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

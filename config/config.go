// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/padraicbc/amidarace/catalog"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	// DBDriver selects postgres, sqlite or mysql.
	DBDriver string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// SQLite file, ":memory:" for a throwaway database.
	SQLitePath string

	// MySQL DSN in go-sql-driver form, e.g. user:pass@tcp(host:3306)/amidarace.
	MySQLDSN string

	// JWT signing secret (required by the API server).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	Race RaceConfig
}

// RaceConfig holds the defaults for races that do not override them.
type RaceConfig struct {
	Mode           catalog.RaceMode
	CourseLength   float64 // course units, 0 draws from Mode
	BranchDensity  float64
	GimmickDensity float64
	LaneCount      int // 0 means one lane per horse
	Tick           time.Duration
	MaxRaceTime    time.Duration
	Seed           int64 // 0 draws a fresh seed per race
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win. Load never fails;
// the CLIs run without a database or secret.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_USER", "padraic")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "amidarace")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "amidarace.db")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)

	v.SetDefault("RACE_MODE", string(catalog.ModeMile))
	v.SetDefault("COURSE_LENGTH", 0)
	v.SetDefault("BRANCH_DENSITY", 0.5)
	v.SetDefault("GIMMICK_DENSITY", 0.3)
	v.SetDefault("LANE_COUNT", 0)
	v.SetDefault("TICK_MS", 16)
	v.SetDefault("MAX_RACE_SECONDS", 600)
	v.SetDefault("RACE_SEED", 0)

	mode, ok := catalog.ParseRaceMode(v.GetString("RACE_MODE"))
	if !ok {
		log.Printf("config: unknown RACE_MODE %q, using %s", v.GetString("RACE_MODE"), catalog.ModeMile)
		mode = catalog.ModeMile
	}

	return &Config{
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		Race: RaceConfig{
			Mode:           mode,
			CourseLength:   v.GetFloat64("COURSE_LENGTH"),
			BranchDensity:  v.GetFloat64("BRANCH_DENSITY"),
			GimmickDensity: v.GetFloat64("GIMMICK_DENSITY"),
			LaneCount:      v.GetInt("LANE_COUNT"),
			Tick:           time.Duration(v.GetInt("TICK_MS")) * time.Millisecond,
			MaxRaceTime:    time.Duration(v.GetInt("MAX_RACE_SECONDS")) * time.Second,
			Seed:           v.GetInt64("RACE_SEED"),
		},
	}
}

// LoadServer is Load plus the settings the API server cannot run without.
func LoadServer() *Config {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Validate reports missing server settings.
func (c *Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && c.DBPass == "" {
			errs = append(errs, errors.New("config: DATABASE_URL or DB_PASS must be set"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("config: SQLITE_PATH must be set"))
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			errs = append(errs, errors.New("config: MYSQL_DSN must be set"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET must be set"))
	}
	return errors.Join(errs...)
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

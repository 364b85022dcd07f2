// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"roster/internal/domain/roster"
)

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Config is shared by the server and the seed CLI.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Backend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	DatabaseURL      string        `env:"DATABASE_URL"`
	StatementTimeout time.Duration `env:"TX_STATEMENT_TIMEOUT" envDefault:"30s"`
	Serializable     bool          `env:"TX_SERIALIZABLE" envDefault:"false"`
	Migrate          bool          `env:"DB_MIGRATE" envDefault:"true"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"roster.db"`
	RedisURL   string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// SeedTeams is a comma separated list of ID:NAME:MISSING entries
	// upserted at startup.
	SeedTeams []string `env:"SEED_TEAMS" envSeparator:","`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Development reports whether console-friendly logging should be used.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", c.Backend)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Backend)
	}

	if c.StatementTimeout < 0 {
		return fmt.Errorf("TX_STATEMENT_TIMEOUT must not be negative")
	}
	if _, err := ParseTeams(c.SeedTeams); err != nil {
		return fmt.Errorf("SEED_TEAMS: %w", err)
	}
	return nil
}

// Teams returns the parsed SEED_TEAMS entries.
func (c Config) Teams() []roster.Team {
	teams, _ := ParseTeams(c.SeedTeams)
	return teams
}

// ParseTeams parses entries of the form ID:NAME:MISSING.
// Blank entries are skipped.
func ParseTeams(entries []string) ([]roster.Team, error) {
	teams := make([]roster.Team, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		team, err := ParseTeam(entry)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// ParseTeam parses one ID:NAME:MISSING entry.
func ParseTeam(entry string) (roster.Team, error) {
	parts := strings.Split(entry, ":")
	if len(parts) != 3 {
		return roster.Team{}, fmt.Errorf("team %q: want ID:NAME:MISSING", entry)
	}

	teamID := strings.TrimSpace(parts[0])
	if teamID == "" {
		return roster.Team{}, fmt.Errorf("team %q: id is required", entry)
	}
	// Bounded to 63 bits: the SQL backends store the count as a signed BIGINT.
	missing, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 63)
	if err != nil {
		return roster.Team{}, fmt.Errorf("team %q: missing players: %w", entry, err)
	}

	return roster.Team{
		ID:             teamID,
		Name:           strings.TrimSpace(parts[1]),
		MissingPlayers: missing,
	}, nil
}

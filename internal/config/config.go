// Package config loads the server settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// DriverNone disables persistence; sessions live in memory only.
const DriverNone = "none"

type Config struct {
	Addr          string        `name:"addr" short:"a" default:":8080" env:"BLACKJACK_ADDR" help:"Address to listen on"`
	DBDriver      string        `name:"db-driver" enum:"sqlite3,postgres,none" default:"sqlite3" env:"BLACKJACK_DB_DRIVER" help:"Database driver (sqlite3, postgres or none)"`
	DBDSN         string        `name:"db-dsn" default:"./data/blackjack.db" env:"BLACKJACK_DB_DSN" help:"Database file path or connection string"`
	FrontendURL   string        `name:"frontend" default:"http://localhost:5173" env:"BLACKJACK_FRONTEND_URL" help:"Frontend URL for CORS"`
	LogLevel      string        `name:"log-level" short:"l" enum:"debug,info,warn,error" default:"info" env:"BLACKJACK_LOG_LEVEL" help:"Log level"`
	SessionTTL    time.Duration `name:"session-ttl" default:"30m" env:"BLACKJACK_SESSION_TTL" help:"Remove sessions idle for longer than this"`
	SweepInterval time.Duration `name:"sweep-interval" default:"1m" env:"BLACKJACK_SWEEP_INTERVAL" help:"How often idle sessions are swept"`
	Seed          uint64        `name:"seed" env:"BLACKJACK_SEED" help:"Shuffle seed; 0 shuffles randomly"`
}

// Load reads envFiles (or ./.env when none are given and it exists) into the
// environment, then parses args over the defaults and environment.
func Load(args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name("blackjack-server"),
		kong.Description("Single-player blackjack game server"),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings kong cannot check on its own.
func (c *Config) Validate() error {
	if c.DBDriver != DriverNone && c.DBDSN == "" {
		return fmt.Errorf("db-dsn is required for driver %s", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session-ttl must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep-interval must be positive, got %s", c.SweepInterval)
	}
	return nil
}

// Level returns the charmbracelet/log level for LogLevel.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PersistenceEnabled reports whether a database is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.DBDriver != DriverNone
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "./data/blackjack.db", cfg.DBDSN)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.True(t, cfg.PersistenceEnabled())
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--addr", ":9000",
		"--db-driver", "none",
		"--log-level", "debug",
		"--session-ttl", "5m",
		"--seed", "42",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.False(t, cfg.PersistenceEnabled())
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("BLACKJACK_DB_DRIVER", "postgres")
	t.Setenv("BLACKJACK_DB_DSN", "postgres://localhost/blackjack?sslmode=disable")
	t.Setenv("BLACKJACK_SWEEP_INTERVAL", "10s")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/blackjack?sslmode=disable", cfg.DBDSN)
	assert.Equal(t, 10*time.Second, cfg.SweepInterval)

	// Flags win over the environment.
	cfg, err = Load([]string{"--sweep-interval", "20s"})
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.SweepInterval)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BLACKJACK_FRONTEND_URL=https://cards.example\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BLACKJACK_FRONTEND_URL") })

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example", cfg.FrontendURL)

	_, err = Load(nil, filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown driver", []string{"--db-driver", "mysql"}},
		{"unknown log level", []string{"--log-level", "loud"}},
		{"empty dsn", []string{"--db-dsn", ""}},
		{"zero ttl", []string{"--session-ttl", "0s"}},
		{"negative sweep", []string{"--sweep-interval", "-1s"}},
		{"bad duration", []string{"--session-ttl", "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestEmptyDSNAllowedWithoutDatabase(t *testing.T) {
	cfg, err := Load([]string{"--db-driver", "none", "--db-dsn", ""})
	require.NoError(t, err)
	assert.False(t, cfg.PersistenceEnabled())
}

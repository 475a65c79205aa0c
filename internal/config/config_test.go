package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "cashdesk"
  password: "secret"
  database: "cashdesk"
  ssl_mode: "disable"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("DefaultsApplied", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "Africa/Cairo", cfg.Business.Timezone)
		assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, "0 0 0 * * *", cfg.Scheduler.DailyReset)
		assert.Equal(t, "0 5 0 1 * *", cfg.Scheduler.MonthlyReset)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("BUSINESS_TIMEZONE", "Europe/Athens")

		cfg, err := Load(writeConfig(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "Europe/Athens", cfg.Business.Timezone)
		assert.Equal(t, "Europe/Athens", cfg.BusinessLocation().String())
	})

	t.Run("ShortJWTSecretRejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := Load(writeConfig(t, validYAML))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("BadTimezoneRejected", func(t *testing.T) {
		t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus")
		_, err := Load(writeConfig(t, validYAML))
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@localhost:5432/d?sslmode=disable", cfg.GetDatabaseConnectionString())
}

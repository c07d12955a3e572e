package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"CAROBAR_ENV_FILE",
	"CAROBAR_APP_NAME",
	"CAROBAR_APP_ENV",
	"CAROBAR_APP_PORT",
	"CAROBAR_DATABASE_HOST",
	"CAROBAR_DATABASE_PORT",
	"CAROBAR_DATABASE_PASSWORD",
	"CAROBAR_DATABASE_SSLMODE",
	"CAROBAR_DATABASE_MAX_OPEN_CONNS",
	"CAROBAR_DATABASE_MAX_IDLE_CONNS",
	"CAROBAR_JWT_SECRET",
	"CAROBAR_COOKIE_SECURE",
	"CAROBAR_COOKIE_SAME_SITE",
	"CAROBAR_CACHE_ACCOUNTS_TTL",
	"CAROBAR_TELEMETRY_SAMPLING_RATIO",
	"CAROBAR_TELEMETRY_DB_LOG_FULL_SQL",
}

// isolateEnv clears the managed variables for the duration of the test
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(managedEnv))
	for _, k := range managedEnv {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
	os.Setenv("CAROBAR_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "carobar-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "carobar", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 30*time.Minute, cfg.Cache.AccountsTTL)
		assert.Equal(t, "carobar_token", cfg.Cookie.Name)
		assert.Equal(t, 12*time.Hour, cfg.JWT.AccessTokenExpiration)
	})

	t.Run("loads values from environment variables with CAROBAR prefix", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CAROBAR_APP_NAME", "test-app")
		os.Setenv("CAROBAR_APP_PORT", "9000")
		os.Setenv("CAROBAR_DATABASE_HOST", "testdb.local")
		os.Setenv("CAROBAR_DATABASE_PORT", "5433")
		os.Setenv("CAROBAR_CACHE_ACCOUNTS_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 5*time.Minute, cfg.Cache.AccountsTTL)
	})

	t.Run("loads values from env file", func(t *testing.T) {
		isolateEnv(t)
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CAROBAR_APP_PORT=7070\n"), 0o600))
		os.Setenv("CAROBAR_ENV_FILE", path)
		t.Cleanup(func() { os.Unsetenv("CAROBAR_APP_PORT") })

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.App.Port)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CAROBAR_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CAROBAR_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown same site policy", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CAROBAR_COOKIE_SAME_SITE", "sometimes")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.same_site")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CAROBAR_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func() {
		os.Setenv("CAROBAR_APP_ENV", "production")
		os.Setenv("CAROBAR_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("CAROBAR_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CAROBAR_DATABASE_SSLMODE", "require")
		os.Setenv("CAROBAR_COOKIE_SECURE", "true")
	}

	t.Run("accepts valid production config", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	tests := []struct {
		name    string
		mutate  func()
		wantErr string
	}{
		{"requires jwt.secret", func() { os.Unsetenv("CAROBAR_JWT_SECRET") }, "jwt.secret is required"},
		{"requires long jwt.secret", func() { os.Setenv("CAROBAR_JWT_SECRET", "short") }, "at least 32 characters"},
		{"requires database.password", func() { os.Unsetenv("CAROBAR_DATABASE_PASSWORD") }, "database.password"},
		{"rejects sslmode disable", func() { os.Setenv("CAROBAR_DATABASE_SSLMODE", "disable") }, "sslmode"},
		{"requires secure cookie", func() { os.Setenv("CAROBAR_COOKIE_SECURE", "false") }, "cookie.secure"},
		{"rejects full sql logging", func() { os.Setenv("CAROBAR_TELEMETRY_DB_LOG_FULL_SQL", "true") }, "db_log_full_sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			setValidProductionBase()
			tt.mutate()

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss word", DBName: "carobar", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%20word@db:5432/carobar?sslmode=disable", d.DSN())
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CHRONO_APP_NAME":          os.Getenv("CHRONO_APP_NAME"),
		"CHRONO_APP_ENV":           os.Getenv("CHRONO_APP_ENV"),
		"CHRONO_APP_PORT":          os.Getenv("CHRONO_APP_PORT"),
		"CHRONO_DATABASE_HOST":     os.Getenv("CHRONO_DATABASE_HOST"),
		"CHRONO_DATABASE_PASSWORD": os.Getenv("CHRONO_DATABASE_PASSWORD"),
		"CHRONO_DATABASE_SSLMODE":  os.Getenv("CHRONO_DATABASE_SSLMODE"),
		"CHRONO_JWT_SECRET":        os.Getenv("CHRONO_JWT_SECRET"),
		"CHRONO_COOKIE_SECURE":     os.Getenv("CHRONO_COOKIE_SECURE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "chronotes-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "chronotes", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "chronotes-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("CHRONO_APP_PORT", "9090")
		os.Setenv("CHRONO_DATABASE_HOST", "db.internal")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("CHRONO_APP_ENV", "production")
		os.Setenv("CHRONO_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("CHRONO_APP_ENV", "production")
		os.Setenv("CHRONO_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("CHRONO_DATABASE_PASSWORD", "secret")
		os.Setenv("CHRONO_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "chronotes",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "chronotes")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

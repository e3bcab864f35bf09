package initializers

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_BACKEND", "DB_URL", "AUTH_MODE", "SECRET", "TIMEZONE",
		"STATS_BATCH_SIZE", "STATS_MAX_CONCURRENCY", "STRICT_TRANSITIONS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFirestore, cfg.StoreBackend)
	assert.Equal(t, AuthFirebase, cfg.AuthMode)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.StrictTransitions)
	assert.True(t, cfg.NeedsFirebase())
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/mawaqit")
	t.Setenv("AUTH_MODE", "hmac")
	t.Setenv("SECRET", "s3cret")
	t.Setenv("TIMEZONE", "Asia/Kuala_Lumpur")
	t.Setenv("STATS_BATCH_SIZE", "5")
	t.Setenv("STATS_MAX_CONCURRENCY", "2")
	t.Setenv("STRICT_TRANSITIONS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.Location.String())
	assert.Equal(t, 5, cfg.StatsBatchSize)
	assert.Equal(t, 2, cfg.StatsMaxConcurrency)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.False(t, cfg.NeedsFirebase())
	assert.Len(t, cfg.Today(), len("2006-01-02"))
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "redis"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_BACKEND": "postgres"}},
		{name: "hmac without secret", env: map[string]string{"AUTH_MODE": "hmac"}},
		{name: "unknown auth mode", env: map[string]string{"AUTH_MODE": "basic"}},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "bad batch size", env: map[string]string{"STATS_BATCH_SIZE": "-1"}},
		{name: "bad strict flag", env: map[string]string{"STRICT_TRANSITIONS": "maybe"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

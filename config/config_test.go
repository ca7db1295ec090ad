package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "DATA_FILE", "DATABASE_URL", "COLLECTION_NAME",
		"DEFAULT_IMAGE_URL", "CORS_ALLOWED_ORIGINS", "JWT_SECRET", "ADMIN_USERNAME",
		"ADMIN_PASSWORD_HASH", "MAILER_PROVIDER", "MAILER_FROM_ADDRESS", "MAILER_FROM_NAME",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "CONTEXT_TIMEOUT",
		"TOKEN_EXPIRY", "SAVE_RETRIES", "SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GO_ENV", "production")
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "swiftmeet_events.json", cfg.DataFile)
	assert.Equal(t, "swiftMeetEvents", cfg.CollectionName)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, 12*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 3, cfg.SaveRetries)
	assert.Equal(t, "organizer", cfg.AdminUsername)
	assert.Equal(t, "noop", cfg.Mailer.Provider)
	assert.Equal(t, "SwiftMeet", cfg.Mailer.FromName)
	assert.Equal(t, "us-east-1", cfg.Mailer.Region)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("CONTEXT_TIMEOUT", "250ms")
	t.Setenv("SAVE_RETRIES", "0")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.ContextTimeout)
	assert.Equal(t, 0, cfg.SaveRetries)
	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.Mailer.InsecureSkipVerify)
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown driver", "STORE_DRIVER", "mongo", "STORE_DRIVER"},
		{"bad duration", "CONTEXT_TIMEOUT", "soon", "CONTEXT_TIMEOUT"},
		{"negative timeout", "CONTEXT_TIMEOUT", "-1s", "CONTEXT_TIMEOUT"},
		{"bad retries", "SAVE_RETRIES", "many", "SAVE_RETRIES"},
		{"negative retries", "SAVE_RETRIES", "-2", "SAVE_RETRIES"},
		{"bad bool", "SES_INSECURE_SKIP_VERIFY", "maybe", "SES_INSECURE_SKIP_VERIFY"},
		{"hash without secret", "ADMIN_PASSWORD_HASH", "$2a$10$abc", "JWT_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production", "info").Info("hello", "k", "v")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])

	buf.Reset()
	newLogger(&buf, "development", "warn").Info("dropped")
	assert.Empty(t, buf.String())
	newLogger(&buf, "development", "warn").Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

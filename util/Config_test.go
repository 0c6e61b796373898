package util_test

import (
	"os"
	"testing"
	"time"

	"farm-market-session/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_STORE", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "SMTP_HOST", "RSA_PUBLIC_KEY"} {
		t.Setenv(key, "")
	}

	cfg := util.LoadConfig()

	assert.Equal(t, "", cfg.Port, "an explicitly empty PORT is kept")
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SESSION_STORE", "postgres")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DB_NAME", "sessions")

	cfg := util.LoadConfig()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "postgres", cfg.SessionStore)
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "sessions", cfg.DB.Name)
}

func TestLoadConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "ten")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := util.LoadConfig()

	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadConfig_NoFallbackSecrets(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "SESSION_STORE_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := util.LoadConfig()

	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.SessionStoreKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     util.Config
		wantErr string
	}{
		{"no token key", util.Config{SessionStore: "memory"}, "neither RSA_PUBLIC_KEY nor JWT_SECRET"},
		{"hmac secret", util.Config{JWTSecret: "s", SessionStore: "memory"}, ""},
		{"rsa key", util.Config{RSAPublicKey: "pem", SessionStore: "memory"}, ""},
		{"postgres without store key", util.Config{JWTSecret: "s", SessionStore: "postgres"}, "SESSION_STORE_KEY"},
		{"postgres with store key", util.Config{JWTSecret: "s", SessionStore: "postgres", SessionStoreKey: "k"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

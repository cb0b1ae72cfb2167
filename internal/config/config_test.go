package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "HOST", "PORT", "ALLOWED_ORIGINS",
		"FRONTEND_URL", "FRONTEND_URL_2", "FRONTEND_URL_3",
		"MONGODB_URI", "MONGO_URI", "POSTGRES_URI", "REDIS_URI",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"AI_API_KEY", "OPENAI_API_KEY", "AI_BASE_URL", "AI_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "postgres://localhost:5432/campuscalm?sslmode=disable", cfg.PostgresURI)
	assert.Equal(t, "mongodb://localhost:27017/campuscalm", cfg.MongoURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AllowedHost, "host check should be disabled outside production")
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
	assert.Empty(t, cfg.AIAPIKey)
}

func TestLoadProductionAllowedHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"https with path", "https://api.campuscalm.app/v1", "api.campuscalm.app"},
		{"http with port", "http://api.campuscalm.app:8080", "api.campuscalm.app"},
		{"bare host", "api.campuscalm.app", "api.campuscalm.app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENV", "production")
			t.Setenv("HOST", tt.host)

			cfg := Load()

			assert.Equal(t, tt.want, cfg.AllowedHost)
			assert.True(t, cfg.IsProduction())
		})
	}
}

func TestLoadAllowedOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://campuscalm.app, https://www.campuscalm.app ,")

	cfg := Load()

	assert.Equal(t, []string{"https://campuscalm.app", "https://www.campuscalm.app"}, cfg.AllowedOrigins)
}

func TestLoadDerivesOriginsFromBackendHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "https://api.campuscalm.app")
	t.Setenv("FRONTEND_URL", "http://localhost:3000")

	cfg := Load()

	require.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
	assert.Contains(t, cfg.AllowedOrigins, "https://campuscalm.app")
	assert.Contains(t, cfg.AllowedOrigins, "https://www.campuscalm.app")
}

func TestLoadAIKeyFallsBackToOpenAIEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, "sk-test", cfg.AIAPIKey)
}

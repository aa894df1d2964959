package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_EXPIRES_IN", "DB_DRIVER", "CORS_ORIGINS", "MEDIA_PUBLIC_URL", "MEDIA_USE_SSL", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 86400, cfg.JWTExpiresIn)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "http://localhost:9000", cfg.Media.PublicURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_EXPIRES_IN", "3600")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MEDIA_PUBLIC_URL", "https://cdn.example/")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "https://cdn.example", cfg.Media.PublicURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, "Admin", cfg.Admin.Name)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")
	t.Setenv("MAX_UPLOAD_SIZE", "-1")

	cfg := Load()

	assert.Equal(t, 86400, cfg.JWTExpiresIn)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
}

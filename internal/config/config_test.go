package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_DURATION", "")
	t.Setenv("SIDEBAR_TAGS", "")
	t.Setenv("MINIO_PUBLIC_URL", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("MINIO_BUCKET_NAME", "")
	t.Setenv("MINIO_USE_SSL", "")
	t.Setenv("TRUST_PROXY", "")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, []string{"UFC", "Boxing"}, cfg.Site.SidebarTags)
	assert.Equal(t, 10, cfg.Site.PageSize)
	assert.Equal(t, "http://localhost:9000/images", cfg.MinIO.PublicURL)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_DURATION", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")
	t.Setenv("SIDEBAR_TAGS", " Bellator , ,ONE ")
	t.Setenv("MINIO_PUBLIC_URL", "https://cdn.example.com/media/")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 90*time.Minute, cfg.SessionDuration)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, int64(2048), cfg.MaxUploadSize)
	assert.Equal(t, []string{"Bellator", "ONE"}, cfg.Site.SidebarTags)
	assert.Equal(t, "https://cdn.example.com/media", cfg.MinIO.PublicURL)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 2*time.Hour, parseDuration("7d", 2*time.Hour))
	assert.Equal(t, 2*time.Hour, parseDuration("-1h", 2*time.Hour))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("lots"))
	assert.Empty(t, splitCSV(" , "))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "recipe-profile", cfg.AppName)
	assert.Equal(t, int64(5*1024*1024), cfg.AvatarMaxBytes)
	assert.Equal(t, 3, cfg.UsernameMinLen)
	assert.Equal(t, "inline", cfg.AvatarStorage)
	assert.False(t, cfg.UseGCSAvatars())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AVATAR_STORAGE", "GCS")
	t.Setenv("GCS_BUCKET", "avatars")
	t.Setenv("SCREEN_LOAD_TIMEOUT", "750ms")
	t.Setenv("USERNAME_MIN_LEN", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")

	cfg := Load()

	assert.True(t, cfg.UseGCSAvatars())
	assert.Equal(t, 750*time.Millisecond, cfg.ScreenLoadTimeout)
	assert.Equal(t, 3, cfg.UsernameMinLen)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}

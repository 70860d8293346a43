package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_DSN", "JWT_TTL", "REDIS_URL", "CORS_ALLOWED_ORIGINS", "AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}
	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, 24*time.Hour, env.JWTTTL)
	assert.Empty(t, env.RedisURL)
	assert.False(t, env.AutoMigrate)
	assert.Contains(t, env.CORSAllowedOrigins, "http://localhost:5173")
	assert.Contains(t, env.DSN(), "parseTime=true")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("DB_DSN", "u:p@tcp(db:3306)/x")

	env := LoadEnv()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 2*time.Hour, env.JWTTTL)
	assert.Equal(t, 30*time.Second, env.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.True(t, env.AutoMigrate)
	assert.Equal(t, "u:p@tcp(db:3306)/x", env.DSN())
}

func TestLoadConsole(t *testing.T) {
	t.Setenv("ADMINHUB_API_URL", "")
	t.Setenv("ADMINHUB_TOKEN", " tok ")
	t.Setenv("LOG_LEVEL", "")

	c := LoadConsole()
	assert.Equal(t, "http://localhost:8080", c.APIURL)
	assert.Equal(t, "tok", c.Token)
	assert.Equal(t, "warn", c.LogLevel)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN      string
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string
	CacheTTL time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	AutoMigrate bool
}

// LoadEnv reads the process environment, filling it from .env first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBDSN:      getEnv("DB_DSN", ""),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getEnv("DB_NAME", "adminhub"),

		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", 30*time.Second),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		AutoMigrate: getBool("AUTO_MIGRATE", false),
	}
}

// Console is what adminctl needs to reach the API.
type Console struct {
	APIURL   string
	Token    string
	LogLevel string
}

func LoadConsole() Console {
	_ = godotenv.Load()

	return Console{
		APIURL:   getEnv("ADMINHUB_API_URL", "http://localhost:8080"),
		Token:    getEnv("ADMINHUB_TOKEN", ""),
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

// DSN prefers DB_DSN and otherwise assembles a go-sql-driver/mysql DSN.
func (e Env) DSN() string {
	if e.DBDSN != "" {
		return e.DBDSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&clientFoundRows=true&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBName,
	)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

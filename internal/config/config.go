package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Admin holds the credentials of the account seeded at startup.
type Admin struct {
	Name     string
	Email    string
	Password string
}

// Media holds the object store settings used for uploaded thumbnails.
type Media struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	// PublicURL is the base under which uploaded objects are served.
	PublicURL string
}

// Supabase holds the external auth service used by the health proxy.
type Supabase struct {
	URL     string
	AnonKey string
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env           string
	ServerPort    string
	DBDriver      string
	DatabaseURL   string
	DBTracing     bool
	ResetDB       bool
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	JWTSecret     string
	JWTExpiresIn  int
	Admin         Admin
	Media         Media
	MaxUploadSize int64
	Supabase      Supabase
	CORSOrigins   []string
	LogLevel      string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	media := Media{
		Endpoint:  getEnv("MEDIA_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MEDIA_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MEDIA_SECRET_KEY", "minioadmin"),
		Bucket:    getEnv("MEDIA_BUCKET", "portfolio"),
		UseSSL:    getEnvBool("MEDIA_USE_SSL", false),
		Region:    getEnv("MEDIA_REGION", "us-east-1"),
	}
	media.PublicURL = strings.TrimSuffix(getEnv("MEDIA_PUBLIC_URL", defaultPublicURL(media)), "/")

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		ServerPort:   getEnv("PORT", "5000"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseURL:  getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/portfolio?charset=utf8mb4&parseTime=True&loc=UTC"),
		DBTracing:    getEnvBool("DB_TRACING", false),
		ResetDB:      getEnvBool("RESET_DB", false),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		CacheTTL:     getEnvDuration("CACHE_TTL", time.Minute),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiresIn: getEnvInt("JWT_EXPIRES_IN", 86400),
		Admin: Admin{
			Name:     getEnv("ADMIN_NAME", "Admin"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Media:         media,
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
		Supabase: Supabase{
			URL:     strings.TrimSuffix(os.Getenv("SUPABASE_URL"), "/"),
			AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		},
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether cookies must be issued as Secure/SameSite=None.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL is the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresIn) * time.Second
}

func defaultPublicURL(m Media) string {
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + m.Endpoint
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBTimezone string

	ServerPort            int
	ServerHost            string
	ServerFramework       string
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerIdleTimeout     time.Duration
	ServerShutdownTimeout time.Duration

	AppEnv             string
	LogLevel           string
	AppName            string
	CorsAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	SwaggerHost        string
	SwaggerBasePath    string
	SwaggerSchemes     []string

	// S3-compatible object storage for photos.
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
	S3UsePathStyle  bool

	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	InsightRelayURL string
	InsightTimeout  time.Duration

	ImageMaxDimension int
	ImageQuality      int
	ImageMaxPixels    int
	UploadMaxBytes    int
}

// LoadConfig loads configuration from .env file or environment variables.
func LoadConfig(envFile ...string) (*AppConfig, error) {
	path := "config.env"
	if len(envFile) > 0 && envFile[0] != "" {
		path = envFile[0]
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("could not load env file, using environment variables or defaults")
		}
	} else if len(envFile) > 0 {
		log.Warn().Str("file", path).Msg("env file not found, using environment variables or defaults")
	}

	cfg := &AppConfig{
		DBHost:     getStringEnv("DB_HOST", "localhost"),
		DBPort:     getIntEnv("DB_PORT", 5432),
		DBUser:     getStringEnv("DB_USER", "postgres"),
		DBPassword: getStringEnv("DB_PASSWORD", "password"),
		DBName:     getStringEnv("DB_NAME", "vibetrack"),
		DBSslMode:  getStringEnv("DB_SSL_MODE", "disable"),
		DBTimezone: getStringEnv("DB_TIMEZONE", "UTC"),

		ServerPort:            getIntEnv("SERVER_PORT", 8080),
		ServerHost:            getStringEnv("SERVER_HOST", "0.0.0.0"),
		ServerFramework:       strings.ToLower(getStringEnv("SERVER_FRAMEWORK", "fiber")),
		ServerReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", "15s"),
		ServerWriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", "30s"),
		ServerIdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", "60s"),
		ServerShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", "5s"),

		AppEnv:             strings.ToLower(getStringEnv("APP_ENV", "development")),
		LogLevel:           strings.ToLower(getStringEnv("LOG_LEVEL", "info")),
		AppName:            getStringEnv("APP_NAME", "VibeTrack"),
		CorsAllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", "*"),
		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),
		SwaggerHost:        getStringEnv("SWAGGER_HOST", "localhost:8080"),
		SwaggerBasePath:    getStringEnv("SWAGGER_BASE_PATH", "/"),
		SwaggerSchemes:     getSliceEnv("SWAGGER_SCHEMES", "http,https"),

		S3Endpoint:      getStringEnv("S3_ENDPOINT", ""),
		S3Region:        getStringEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getStringEnv("S3_BUCKET", "vibes"),
		S3AccessKey:     getStringEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getStringEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL: getStringEnv("S3_PUBLIC_BASE_URL", ""),
		S3UsePathStyle:  getBoolEnv("S3_USE_PATH_STYLE", true),

		GeminiAPIKey:    getStringEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getStringEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL:   getStringEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		InsightRelayURL: getStringEnv("INSIGHT_RELAY_URL", ""),
		InsightTimeout:  getDurationEnv("INSIGHT_TIMEOUT", "5s"),

		ImageMaxDimension: getIntEnv("IMAGE_MAX_DIMENSION", 1000),
		ImageQuality:      getIntEnv("IMAGE_QUALITY", 80),
		ImageMaxPixels:    getIntEnv("IMAGE_MAX_PIXELS", 50_000_000),
		UploadMaxBytes:    getIntEnv("UPLOAD_MAX_BYTES", 10<<20),
	}

	if cfg.ServerFramework != "fiber" && cfg.ServerFramework != "gin" {
		log.Warn().Str("value", cfg.ServerFramework).Msg("invalid SERVER_FRAMEWORK, defaulting to 'fiber'")
		cfg.ServerFramework = "fiber"
	}

	validAppEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validAppEnvs[cfg.AppEnv] {
		log.Warn().Str("value", cfg.AppEnv).Msg("invalid APP_ENV, defaulting to 'development'")
		cfg.AppEnv = "development"
	}

	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// DSN renders the PostgreSQL connection string.
func (c *AppConfig) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + strconv.Itoa(c.DBPort) +
		" sslmode=" + c.DBSslMode +
		" TimeZone=" + c.DBTimezone
}

// Addr is the listen address of the HTTP server.
func (c *AppConfig) Addr() string {
	return c.ServerHost + ":" + strconv.Itoa(c.ServerPort)
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

func getStringEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid int value")
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid bool value")
		return defaultValue
	}
	return value
}

func getDurationEnv(key, defaultValue string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Str("default", defaultValue).Msg("invalid duration value")
		defaultDur, _ := time.ParseDuration(defaultValue)
		return defaultDur
	}
	return value
}

func getSliceEnv(key, defaultValue string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return []string{}
	}
	parts := strings.Split(valueStr, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Float64("default", defaultValue).Msg("invalid float value")
		return defaultValue
	}
	return value
}

package infrastructures

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type AppConfig struct {
	APP_ENV              string
	PORT                 string
	DATABASE_URL         string
	REDIS_ADDRESS        string
	REDIS_PASSWORD       string
	REDIS_DB             int
	ACCESS_TOKEN_SECRET  string
	ACCESS_TOKEN_EXPIRY  time.Duration
	REFRESH_TOKEN_SECRET string
	REFRESH_TOKEN_EXPIRY time.Duration
	CORS_ORIGIN          string
	UPLOAD_TEMP_DIR      string
	LOG_LEVEL            string
	BODY_LIMIT_MB        int
	CloudinaryConfig     CloudinaryConfig
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		APP_ENV:              getEnv("APP_ENV", "development"),
		PORT:                 getEnv("PORT", "8000"),
		DATABASE_URL:         os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:        getEnv("REDIS_ADDRESS", "localhost:6379"),
		REDIS_PASSWORD:       os.Getenv("REDIS_PASSWORD"),
		REDIS_DB:             getEnvInt("REDIS_DB", 0),
		ACCESS_TOKEN_SECRET:  os.Getenv("ACCESS_TOKEN_SECRET"),
		ACCESS_TOKEN_EXPIRY:  getEnvDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		REFRESH_TOKEN_SECRET: os.Getenv("REFRESH_TOKEN_SECRET"),
		REFRESH_TOKEN_EXPIRY: getEnvDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		CORS_ORIGIN:          getEnv("CORS_ORIGIN", "*"),
		UPLOAD_TEMP_DIR:      getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
		LOG_LEVEL:            getEnv("LOG_LEVEL", "info"),
		BODY_LIMIT_MB:        getEnvInt("BODY_LIMIT_MB", 100),
		CloudinaryConfig: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}

	return Config
}

func (c *AppConfig) IsProduction() bool {
	return c.APP_ENV == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

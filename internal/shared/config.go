package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	// Public base URL prepended to stored image paths in responses the
	// client renders (replaces the hardcoded origin of the old frontend).
	PublicBaseURL string

	// File store: "disk" (default) or "minio".
	FileBackend string
	UploadDir   string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// hotelctl only
	APIBaseURL string
}

func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,

		PublicBaseURL: env("PUBLIC_BASE_URL", "http://localhost:8080"),

		FileBackend: env("FILE_BACKEND", "disk"),
		UploadDir:   env("UPLOAD_DIR", "./uploads"),

		MinIOEndpoint:  env("MINIO_ENDPOINT", ""),
		MinIOAccessKey: env("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: env("MINIO_SECRET_KEY", ""),
		MinIOBucket:    env("MINIO_BUCKET", "hotel-images"),
		MinIOUseSSL:    env("MINIO_USE_SSL", "") == "true",

		APIBaseURL: env("API_BASE_URL", "http://localhost:8080"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

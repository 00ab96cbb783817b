package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 保存服務啟動所需的所有設定
type Config struct {
	DatabaseURL    string
	RedisAddr      string
	RedisDB        int
	RedisPassword  string
	JWTSecret      string
	Port           int
	SessionTTL     time.Duration
	CacheTTL       time.Duration
	Location       *time.Location
	LogLevel       slog.Level
	ConnectRetries uint64
}

// Addr 回傳 HTTP 監聽位址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var loadDotEnv = func() { _ = godotenv.Load() }

// Load 從環境變數讀取設定；若目前目錄有 .env 檔會先載入（不覆寫既有變數）
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.DatabaseURL, err = databaseURL(); err != nil {
		return nil, err
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("無效的 REDIS_DB: %q", redisDBStr)
	}
	cfg.RedisDB = redisDB

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	cfg.Port, err = intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT 必須介於 1 到 65535，目前為 %d", cfg.Port)
	}

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "UTC"
	}
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("無效的 TIMEZONE: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToLower(envOr("LOG_LEVEL", "info")))); err != nil {
		return nil, fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}

	retries, err := intEnv("CONNECT_RETRIES", 5)
	if err != nil {
		return nil, err
	}
	if retries < 0 {
		return nil, fmt.Errorf("無效的 CONNECT_RETRIES: %d", retries)
	}
	cfg.ConnectRetries = uint64(retries)

	return cfg, nil
}

// LoadDatabaseURL 只讀取 DATABASE_URL，供 migrate 指令使用
func LoadDatabaseURL() (string, error) {
	loadDotEnv()
	return databaseURL()
}

func databaseURL() (string, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	return url, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}

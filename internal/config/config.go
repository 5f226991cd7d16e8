package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTSecret []byte
	JWTExpiry time.Duration

	RedisAddr    string
	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3PublicURL string

	CheckoutBaseURL     string
	CheckoutAccessToken string
	CheckoutSuccessURL  string
	CheckoutFailureURL  string
	CheckoutPendingURL  string
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "keymax-api"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTExpiry: time.Duration(EnvIntDefault("JWT_EXPIRY_MINUTES", 60)) * time.Minute,

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		S3Region:    EnvDefault("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		CheckoutBaseURL:     os.Getenv("CHECKOUT_BASE_URL"),
		CheckoutAccessToken: os.Getenv("CHECKOUT_ACCESS_TOKEN"),
		CheckoutSuccessURL:  os.Getenv("CHECKOUT_SUCCESS_URL"),
		CheckoutFailureURL:  os.Getenv("CHECKOUT_FAILURE_URL"),
		CheckoutPendingURL:  os.Getenv("CHECKOUT_PENDING_URL"),
	}

	if len(cfg.JWTSecret) == 0 {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds configuration knobs for the HTTP server, the two databases,
// the cache backend, the mailer and the side-effect dispatcher.
type Config struct {
	Env      string
	HTTPAddr string

	CatalogDSN string
	OrdersDSN  string

	CacheBackend string // "memory" or "redis"
	RedisAddr    string
	RedisDB      int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DispatchWorkers   int
	DispatchQueueSize int

	NovedadesCron       string
	NovedadesRecipients []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
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

// Load collects configuration from environment with defaults.
func Load() Config {
	recipients := []string{}
	if raw := os.Getenv("NOVEDADES_RECIPIENTS"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
	}

	return Config{
		Env:      getenv("APP_ENV", "dev"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		CatalogDSN: getenv("CATALOG_DB_DSN",
			"host=localhost port=5432 user=postgres password=postgres dbname=catalog_db sslmode=disable"),
		OrdersDSN: getenv("ORDERS_DB_DSN",
			"host=localhost port=5432 user=postgres password=postgres dbname=orders_db sslmode=disable"),

		CacheBackend: getenv("CACHE_BACKEND", "memory"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoienv("REDIS_DB", 0),

		SMTPHost:     getenv("SMTP_HOST", "localhost"),
		SMTPPort:     atoienv("SMTP_PORT", 587),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", "tienda@example.com"),

		DispatchWorkers:   atoienv("DISPATCH_WORKERS", 4),
		DispatchQueueSize: atoienv("DISPATCH_QUEUE_SIZE", 256),

		NovedadesCron:       getenv("NOVEDADES_CRON", "30 8 * * *"),
		NovedadesRecipients: recipients,
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	EventsPath string
	StorePath  string

	AdminPassword string

	BackupDir      string
	BackupInterval time.Duration
	BackupKeep     int

	AllowedOrigins []string
	FeedLimit      int
}

func FromEnv() (Config, error) {
	var c Config
	c.HTTPAddr = envOr("HTTP_ADDR", ":8080")
	c.EventsPath = envOr("EVENTS_PATH", "cynosure_events.json")
	c.StorePath = envOr("STORE_PATH", "participants_store.json")
	c.AdminPassword = envOr("ADMIN_PASSWORD", "vxxxk")
	c.BackupDir = envOr("BACKUP_DIR", "backups")

	interval := envOr("BACKUP_INTERVAL", "10m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return c, fmt.Errorf("BACKUP_INTERVAL %q: %w", interval, err)
	}
	c.BackupInterval = d

	keep := envOr("BACKUP_KEEP", "12")
	n, err := strconv.Atoi(keep)
	if err != nil {
		return c, fmt.Errorf("BACKUP_KEEP %q: %w", keep, err)
	}
	c.BackupKeep = n

	c.AllowedOrigins = splitList(envOr("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	limit := envOr("FEED_LIMIT", "250")
	c.FeedLimit, err = strconv.Atoi(limit)
	if err != nil {
		return c, fmt.Errorf("FEED_LIMIT %q: %w", limit, err)
	}

	return c, nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

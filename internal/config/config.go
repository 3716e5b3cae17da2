package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner service.
type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	CronSecret    string
	SweepInterval time.Duration
	TelegramToken string // optional; empty disables Telegram delivery
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:      strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		CronSecret:    strings.TrimSpace(os.Getenv("CRON_SECRET")),
		SweepInterval: parseMinutes(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_MINUTES"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "agency_planner.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

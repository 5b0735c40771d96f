package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the app.
type Config struct {
	Addr          string
	DatabaseURL   string
	TelegramToken string
	SummaryTime   string // HH:MM, local time
}

// Load reads configuration from environment variables with sane
// defaults. Nothing is required: with an empty environment the app
// serves on :8000 against nutrilog.db with the Telegram notifier off.
func Load() (Config, error) {
	cfg := Config{
		Addr:          strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SummaryTime:   strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if !strings.Contains(cfg.Addr, ":") {
		cfg.Addr = ":" + cfg.Addr
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "nutrilog.db"
	}

	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "21:00"
	}
	if err := validateClock(cfg.SummaryTime); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validateClock(raw string) error {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return fmt.Errorf("SUMMARY_TIME %q: expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("SUMMARY_TIME %q: invalid hour", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("SUMMARY_TIME %q: invalid minute", raw)
	}
	return nil
}

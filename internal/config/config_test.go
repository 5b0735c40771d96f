package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("SUMMARY_TIME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Addr)
	}
	if cfg.DatabaseURL != "nutrilog.db" {
		t.Errorf("DatabaseURL = %q, want nutrilog.db", cfg.DatabaseURL)
	}
	if cfg.TelegramToken != "" {
		t.Errorf("TelegramToken = %q, want empty", cfg.TelegramToken)
	}
	if cfg.SummaryTime != "21:00" {
		t.Errorf("SummaryTime = %q, want 21:00", cfg.SummaryTime)
	}
}

func TestLoadBarePort(t *testing.T) {
	t.Setenv("ADDR", "9090")
	t.Setenv("SUMMARY_TIME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
}

func TestLoadRejectsBadSummaryTime(t *testing.T) {
	for _, bad := range []string{"25:00", "21:60", "9pm", "21", "21:00:00"} {
		t.Setenv("SUMMARY_TIME", bad)
		if _, err := Load(); err == nil {
			t.Errorf("SUMMARY_TIME=%q accepted, want error", bad)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("default port: %d", cfg.Server.Port)
	}
	if cfg.Signals.ShortWindow != 50 || cfg.Signals.LongWindow != 200 {
		t.Errorf("default windows: %d/%d", cfg.Signals.ShortWindow, cfg.Signals.LongWindow)
	}
	if cfg.Signals.Method != "sma" {
		t.Errorf("default method: %q", cfg.Signals.Method)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 8080
signals:
  short_window: 20
  long_window: 100
telegram:
  bot_token: from-file
  chat_id: "123"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("WATCHLIST", "AAPL,MSFT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("file port: %d", cfg.Server.Port)
	}
	if cfg.Signals.ShortWindow != 20 || cfg.Signals.LongWindow != 100 {
		t.Errorf("file windows: %d/%d", cfg.Signals.ShortWindow, cfg.Signals.LongWindow)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("env must override file: %q", cfg.Telegram.BotToken)
	}
	if cfg.Watchlist.EnvSeed != "AAPL,MSFT" {
		t.Errorf("watchlist seed: %q", cfg.Watchlist.EnvSeed)
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		return cfg
	}

	cfg := base()
	cfg.Signals.ShortWindow = 200
	cfg.Signals.LongWindow = 50
	if err := cfg.Validate(); err == nil {
		t.Error("short >= long must fail validation")
	}

	cfg = base()
	cfg.Signals.Method = "wma"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown method must fail validation")
	}

	cfg = base()
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("token without chat_id must fail validation")
	}

	cfg = base()
	cfg.Lookback.DailyBars = 100
	if err := cfg.Validate(); err == nil {
		t.Error("lookback shorter than long window must fail validation")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Watchlist struct {
		File    string `yaml:"file"`
		EnvSeed string `yaml:"-"`
	} `yaml:"watchlist"`
	Signals struct {
		ShortWindow int    `yaml:"short_window"`
		LongWindow  int    `yaml:"long_window"`
		Method      string `yaml:"method"`
	} `yaml:"signals"`
	Lookback struct {
		DailyBars  int `yaml:"daily_bars"`
		HourlyBars int `yaml:"hourly_bars"`
	} `yaml:"lookback"`
	Schedule struct {
		HourlyCron string `yaml:"hourly_cron"`
		DailyCron  string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		cfg.Watchlist.File = v
	}
	cfg.Watchlist.EnvSeed = os.Getenv("WATCHLIST")
	if v := os.Getenv("SHORT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Signals.ShortWindow = n
		}
	}
	if v := os.Getenv("LONG_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Signals.LongWindow = n
		}
	}
	if v := os.Getenv("SIGNAL_METHOD"); v != "" {
		cfg.Signals.Method = v
	}
	if v := os.Getenv("CRON_HOURLY"); v != "" {
		cfg.Schedule.HourlyCron = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/watchlist.json"
	}
	if cfg.Signals.ShortWindow == 0 {
		cfg.Signals.ShortWindow = 50
	}
	if cfg.Signals.LongWindow == 0 {
		cfg.Signals.LongWindow = 200
	}
	if cfg.Signals.Method == "" {
		cfg.Signals.Method = "sma"
	}
	if cfg.Lookback.DailyBars == 0 {
		cfg.Lookback.DailyBars = 365
	}
	if cfg.Lookback.HourlyBars == 0 {
		cfg.Lookback.HourlyBars = 1440
	}
	if cfg.Schedule.HourlyCron == "" {
		cfg.Schedule.HourlyCron = "0 0 * * * *"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 9 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crosswatch.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Signals.ShortWindow < 1 {
		return fmt.Errorf("signals.short_window must be positive")
	}
	if c.Signals.ShortWindow >= c.Signals.LongWindow {
		return fmt.Errorf("signals.short_window (%d) must be less than signals.long_window (%d)",
			c.Signals.ShortWindow, c.Signals.LongWindow)
	}
	if c.Signals.Method != "sma" && c.Signals.Method != "ema" {
		return fmt.Errorf("signals.method must be sma or ema, got %q", c.Signals.Method)
	}
	if c.Lookback.DailyBars < c.Signals.LongWindow {
		return fmt.Errorf("lookback.daily_bars (%d) shorter than long window (%d)",
			c.Lookback.DailyBars, c.Signals.LongWindow)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}

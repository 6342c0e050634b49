package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`
	Bridge BridgeConfig `mapstructure:"bridge"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Funds  FundsConfig  `mapstructure:"funds"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DailySync string `mapstructure:"daily_sync"`
}

// BridgeConfig points at the MT5 bridge that serves closed trades.
type BridgeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SyncConfig lists the tracked accounts and their fund assignment. Accounts
// are processed sequentially in the order given here.
type SyncConfig struct {
	Accounts       []TrackedAccount `mapstructure:"accounts"`
	AccountTimeout time.Duration    `mapstructure:"account_timeout"`
}

type TrackedAccount struct {
	Number int64  `mapstructure:"number"`
	Fund   string `mapstructure:"fund"`
}

type FundsConfig struct {
	Codes []string `mapstructure:"codes"`
}

// AccountNumbers returns the tracked account numbers in configured order.
func (c SyncConfig) AccountNumbers() []int64 {
	out := make([]int64, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		out = append(out, a.Number)
	}
	return out
}

// IsTracked reports whether the account number is part of the configured set.
func (c SyncConfig) IsTracked(account int64) bool {
	for _, a := range c.Accounts {
		if a.Number == account {
			return true
		}
	}
	return false
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIDUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	// Nightly run at 23:00 UTC for yesterday's date.
	v.SetDefault("cron.daily_sync", "0 0 23 * * *")
	v.SetDefault("bridge.base_url", "http://localhost:8000")
	v.SetDefault("bridge.timeout", "15s")
	v.SetDefault("sync.account_timeout", "60s")
	v.SetDefault("funds.codes", []string{"CORE", "BALANCE", "DYNAMIC", "UNLIMITED"})

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	known := map[string]struct{}{}
	for _, code := range c.Funds.Codes {
		known[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	for _, a := range c.Sync.Accounts {
		if a.Number <= 0 {
			return fmt.Errorf("sync.accounts: invalid account number %d", a.Number)
		}
		fund := strings.ToUpper(strings.TrimSpace(a.Fund))
		if fund == "" {
			continue
		}
		if _, ok := known[fund]; !ok {
			return fmt.Errorf("sync.accounts: account %d assigned to unknown fund %q", a.Number, a.Fund)
		}
	}
	return nil
}

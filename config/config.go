package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration shared by the api and helper
// processes.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Helper   HelperConfig   `mapstructure:"helper"`
	Assets   []AssetConfig  `mapstructure:"assets"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LedgerConfig tunes the conflict-resolving transaction wrapper and
// account-level policy.
type LedgerConfig struct {
	// MaxConflictRetries bounds serialization-failure replays before the
	// wrapper gives up with a conflict-unresolved error.
	MaxConflictRetries int           `mapstructure:"max_conflict_retries"`
	RetryBackoffBase   time.Duration `mapstructure:"retry_backoff_base"`
	UniqueAccountNames bool          `mapstructure:"unique_account_names"`
}

// HelperConfig tunes the background helper process.
type HelperConfig struct {
	BroadcastInterval time.Duration `mapstructure:"broadcast_interval"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	RescanOnStart     bool          `mapstructure:"rescan_on_start"`
}

// AssetConfig describes one asset ledger: its schema namespace in the shared
// database and its chain backend. Each asset gets its own table-set, never
// mixed with another asset's.
type AssetConfig struct {
	Name                  string        `mapstructure:"name"`     // e.g. "btc"
	Schema                string        `mapstructure:"schema"`   // postgres schema holding this asset's tables
	Decimals              int32         `mapstructure:"decimals"` // display-unit decimal places, 8 for BTC
	ConfirmationThreshold int           `mapstructure:"confirmation_threshold"`
	Backend               BackendConfig `mapstructure:"backend"`
}

type BackendConfig struct {
	Type    string        `mapstructure:"type"` // "httpjson" or "null"
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NotifyConfig registers event subscriber channels. All are optional;
// zero subscribers is a valid configuration.
type NotifyConfig struct {
	HTTPURLs []string         `mapstructure:"http_urls"`
	Scripts  []string         `mapstructure:"scripts"`
	NATS     NATSNotifyConfig `mapstructure:"nats"`
}

type NATSNotifyConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CRYPTOLEDGER.
// Nested keys use underscore: CRYPTOLEDGER_DATABASE_HOST, CRYPTOLEDGER_LEDGER_MAX_CONFLICT_RETRIES.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "cryptoledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ledger.max_conflict_retries", 5)
	v.SetDefault("ledger.retry_backoff_base", "20ms")
	v.SetDefault("ledger.unique_account_names", false)
	v.SetDefault("helper.broadcast_interval", "30s")
	v.SetDefault("helper.poll_interval", "60s")
	v.SetDefault("helper.rescan_on_start", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CRYPTOLEDGER_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CRYPTOLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	for i := range cfg.Assets {
		a := &cfg.Assets[i]
		if a.Schema == "" {
			a.Schema = a.Name
		}
		if a.Decimals == 0 {
			a.Decimals = 8
		}
		if a.ConfirmationThreshold == 0 {
			a.ConfirmationThreshold = 15
		}
		if a.Backend.Timeout == 0 {
			a.Backend.Timeout = 30 * time.Second
		}
	}

	return &cfg, nil
}

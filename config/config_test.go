package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "cryptoledger", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 5, cfg.Ledger.MaxConflictRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.Ledger.RetryBackoffBase)
	assert.False(t, cfg.Ledger.UniqueAccountNames)

	assert.Equal(t, 30*time.Second, cfg.Helper.BroadcastInterval)
	assert.Equal(t, time.Minute, cfg.Helper.PollInterval)
	assert.True(t, cfg.Helper.RescanOnStart)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
database:
  host: "db.example.com"
  port: 5433
  user: "appuser"
  password: "secret123"
  dbname: "testdb"
  sslmode: "require"
redis:
  host: "redis.example.com"
  port: 6380
  password: "redispwd"
  db: 2
ledger:
  max_conflict_retries: 10
  retry_backoff_base: "50ms"
  unique_account_names: true
helper:
  broadcast_interval: "10s"
  poll_interval: "20s"
  rescan_on_start: false
assets:
  - name: "btc"
    decimals: 8
    confirmation_threshold: 6
    backend:
      type: "httpjson"
      url: "http://localhost:9245"
      token: "backend-token"
  - name: "ltc"
notify:
  http_urls:
    - "http://localhost:9000/events"
  scripts:
    - "/usr/local/bin/handle-event.sh"
  nats:
    url: "nats://localhost:4222"
    subject: "ledger.events"
log:
  level: "debug"
  pretty: true
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "appuser", cfg.Database.User)
	assert.Equal(t, "require", cfg.Database.SSLMode)

	assert.Equal(t, 10, cfg.Ledger.MaxConflictRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Ledger.RetryBackoffBase)
	assert.True(t, cfg.Ledger.UniqueAccountNames)

	assert.Equal(t, 10*time.Second, cfg.Helper.BroadcastInterval)
	assert.False(t, cfg.Helper.RescanOnStart)

	require.Len(t, cfg.Assets, 2)
	btc := cfg.Assets[0]
	assert.Equal(t, "btc", btc.Name)
	assert.Equal(t, "btc", btc.Schema, "schema should default to the asset name")
	assert.Equal(t, 6, btc.ConfirmationThreshold)
	assert.Equal(t, "httpjson", btc.Backend.Type)
	assert.Equal(t, "http://localhost:9245", btc.Backend.URL)
	assert.Equal(t, 30*time.Second, btc.Backend.Timeout, "backend timeout should default")

	// A bare asset entry picks up every default.
	ltc := cfg.Assets[1]
	assert.Equal(t, "ltc", ltc.Schema)
	assert.Equal(t, int32(8), ltc.Decimals)
	assert.Equal(t, 15, ltc.ConfirmationThreshold)

	require.Len(t, cfg.Notify.HTTPURLs, 1)
	require.Len(t, cfg.Notify.Scripts, 1)
	assert.Equal(t, "nats://localhost:4222", cfg.Notify.NATS.URL)
	assert.Equal(t, "ledger.events", cfg.Notify.NATS.Subject)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CRYPTOLEDGER_DATABASE_HOST", "env-db-host")
	t.Setenv("CRYPTOLEDGER_LEDGER_MAX_CONFLICT_RETRIES", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-db-host", cfg.Database.Host)
	assert.Equal(t, 7, cfg.Ledger.MaxConflictRetries)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "postgres", Password: "pw",
		DBName: "cryptoledger", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/cryptoledger?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", r.Addr())
}

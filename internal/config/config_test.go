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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Equal(t, "web", cfg.Server.StaticDir)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/stockboard.db", cfg.Store.DSN)
	assert.Equal(t, "*/5 * * * * *", cfg.Schedule.SnapshotCron)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 20.0, cfg.Server.RateLimit)
	assert.Equal(t, 40, cfg.Server.RateBurst)
	assert.Equal(t, uint32(5), cfg.Provider.FailureLimit)
	assert.NotZero(t, cfg.Provider.Seed)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  static_dir: public
provider:
  seed: 7
  latency_scale: 0.5
cache:
  ttl: 30s
store:
  driver: file
  dsn: data/lists.json
log:
  format: json
`), 0o644))

	t.Setenv("STOCKBOARD_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "public", cfg.Server.StaticDir)
	assert.Equal(t, int64(7), cfg.Provider.Seed)
	assert.Equal(t, 0.5, cfg.Provider.LatencyScale)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "json", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("STOCKBOARD_PORT", "abc")
	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = "postgres"
	cfg.Store.DSN = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = "memory"
	cfg.Store.DSN = ""
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.RateBurst = -1
	assert.Error(t, cfg.Validate())
}

func TestLoad_RateLimitDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  rate_limit: -1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, -1.0, cfg.Server.RateLimit)
	assert.NoError(t, cfg.Validate())
}

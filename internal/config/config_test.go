package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ACTIVITIES_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{
		"ACTIVITIES_CONFIG_PATH", "ACTIVITIES_SERVER_HOST", "ACTIVITIES_SERVER_PORT",
		"ACTIVITIES_TRANSPORT", "ACTIVITIES_STORE_DRIVER", "ACTIVITIES_STORE_DSN",
		"ACTIVITIES_SEED_PATH", "ACTIVITIES_STATIC_DIR", "ACTIVITIES_LOG_LEVEL",
		"ACTIVITIES_LOG_PATH", "ACTIVITIES_METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, "http", cfg.Transport.Mode)
}

func TestLoadFileThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
store:
  driver: sqlite
  dsn: file:activities.db
log:
  level: debug
metrics:
  enabled: false
`), 0o644))

	t.Setenv("ACTIVITIES_CONFIG_PATH", path)
	t.Setenv("ACTIVITIES_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "file:activities.db", cfg.Store.DSN)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, 50, cfg.Log.MaxSizeMB)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ACTIVITIES_SEED_PATH=seed.yaml\nACTIVITIES_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("ACTIVITIES_ENV_FILE", envPath)
	// Variables already set in the environment win over the file.
	t.Setenv("ACTIVITIES_LOG_LEVEL", "error")
	// godotenv treats an empty-but-set variable as set; clear it so the file applies.
	os.Unsetenv("ACTIVITIES_SEED_PATH")
	t.Cleanup(func() { os.Unsetenv("ACTIVITIES_SEED_PATH") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "seed.yaml", cfg.Seed.Path)
	require.Equal(t, "error", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"ACTIVITIES_SERVER_PORT":     "not-a-port",
		"ACTIVITIES_TRANSPORT":       "carrier-pigeon",
		"ACTIVITIES_STORE_DRIVER":    "postgres",
		"ACTIVITIES_METRICS_ENABLED": "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestValidatePort(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	require.Error(t, cfg.Validate())
}

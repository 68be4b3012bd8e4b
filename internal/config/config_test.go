package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SIGNAGE_CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.DB.Driver)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 3, cfg.Engine.RetryAttempts)
	require.Equal(t, "signage.db", filepath.Base(cfg.DB.Path))
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "signage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
db:
  path: /tmp/x.db
kiosk:
  token: from-file
engine:
  fetch_timeout: 2s
  retry_attempts: 5
`), 0o644))

	t.Setenv("SIGNAGE_KIOSK_TOKEN", "from-env")
	t.Setenv("SIGNAGE_RETRY_BASE_DELAY", "50ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/x.db", cfg.DB.Path)
	require.Equal(t, "from-env", cfg.Kiosk.Token)
	require.Equal(t, 2*time.Second, cfg.Engine.FetchTimeout)
	require.Equal(t, 5, cfg.Engine.RetryAttempts)
	require.Equal(t, 50*time.Millisecond, cfg.Engine.RetryBaseDelay)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SIGNAGE_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("SIGNAGE_CONFIG_PATH", "")
	t.Cleanup(func() { os.Unsetenv("SIGNAGE_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("port", func(t *testing.T) {
		t.Setenv("SIGNAGE_SERVER_PORT", "nope")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("SIGNAGE_DB_DRIVER", "postgres")
		_, err := Load("")
		require.ErrorContains(t, err, "db.driver")
	})

	t.Run("surreal without url", func(t *testing.T) {
		t.Setenv("SIGNAGE_DB_DRIVER", DriverSurrealDB)
		_, err := Load("")
		require.ErrorContains(t, err, "surreal.url")
	})

	t.Run("mode", func(t *testing.T) {
		t.Setenv("SIGNAGE_TRANSPORT", "grpc")
		_, err := Load("")
		require.ErrorContains(t, err, "transport.mode")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("SIGNAGE_FETCH_TIMEOUT", "soon")
		_, err := Load("")
		require.ErrorContains(t, err, "SIGNAGE_FETCH_TIMEOUT")
	})
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPORTX_ENV", "SPORTX_PRIVATE_KEY", "SPORTX_WALLET_RPC",
		"SPORTX_WALLET_ADDRESS", "SPORTX_ETH_RPC", "SPORTX_LOG_LEVEL", "SPORTX_LOG_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPORTX_ENV", "mumbai")
	t.Setenv("SPORTX_PRIVATE_KEY", "deadbeef")
	t.Setenv("SPORTX_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mumbai", cfg.Environment)
	assert.Equal(t, "deadbeef", cfg.PrivateKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPORTX_PRIVATE_KEY", "deadbeef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, string(types.EnvironmentProduction), cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRequiresCredential(t *testing.T) {
	clearEnv(t)

	var configErr *types.ConfigurationError
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr))
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPORTX_ENV", "ropsten")
	t.Setenv("SPORTX_PRIVATE_KEY", "deadbeef")

	var configErr *types.ConfigurationError
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr))
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sportx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"environment: mumbai\nprivate_key: cafebabe\nlog_level: warn\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mumbai", cfg.Environment)
	assert.Equal(t, "cafebabe", cfg.PrivateKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFileEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPORTX_ENV", "rinkeby")
	path := filepath.Join(t.TempDir(), "sportx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"environment: mumbai\nprivate_key: cafebabe\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rinkeby", cfg.Environment, "environment variables beat file values")
	assert.Equal(t, "cafebabe", cfg.PrivateKey)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: [unterminated"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

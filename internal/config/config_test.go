package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"MODE", "HOST", "XMLRPC_PORT", "SOCKET_PORT", "TIMEOUT_MS",
		"RUNTIME_PATH", "RETURN_SLOT", "MAX_CAPTURE_BYTES",
		"HEALTHCHECK_INTERVAL_MS", "MCP_HTTP_ADDR", "ALLOW_NON_LOOPBACK",
	} {
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_DefaultsWhenNothingSet(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModeXMLRPC, cfg.Mode)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9875, cfg.XMLRPCPort)
	assert.Equal(t, 9876, cfg.SocketPort)
	assert.Equal(t, wire.DefaultTimeoutMS, cfg.TimeoutMS)
}

func TestLoad_FileOverlayIsApplied(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: socket\nhost: cad-host\nsocket_port: 7000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeSocket, cfg.Mode)
	assert.Equal(t, "cad-host", cfg.Host)
	assert.Equal(t, 7000, cfg.SocketPort)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: socket\nhost: cad-host\n"), 0o600))

	t.Setenv("HOST", "override-host")
	t.Setenv("MODE", "embedded")
	t.Setenv("RUNTIME_PATH", "/opt/cad/lib")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeEmbedded, cfg.Mode)
	assert.Equal(t, "override-host", cfg.Host)
	assert.Equal(t, "/opt/cad/lib", cfg.RuntimePath)
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "carrier-pigeon")

	_, err := Load("")
	require.Error(t, err)

	var cfgErr *wire.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_RejectsOutOfRangePort(t *testing.T) {
	clearEnv(t)
	t.Setenv("XMLRPC_PORT", "99999")

	_, err := Load("")
	require.Error(t, err)

	var cfgErr *wire.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEOUT_MS", "0")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)

	var cfgErr *wire.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_AllowNonLoopbackIsPresenceTriggered(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOW_NON_LOOPBACK", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.AllowNonLoopback)
}

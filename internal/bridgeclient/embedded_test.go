package bridgeclient

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmbeddedClient_ConnectFailsWithoutRuntime(t *testing.T) {
	c := NewEmbeddedClient(testLogger(), nil, 0)

	err := c.Connect(context.Background())
	assert.ErrorIs(t, err, wire.ErrEmbeddedUnavailable)
	assert.False(t, c.IsConnected())
}

func TestEmbeddedClient_ExecuteRoundTrip(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	c := NewEmbeddedClient(testLogger(), rt, 0)

	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	result, err := c.Execute(context.Background(), "_result_ = 2 + 2", 1000)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.InDelta(t, 4.0, result.Result, 0.0001)
}

func TestEmbeddedClient_MethodsFailBeforeConnect(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	c := NewEmbeddedClient(testLogger(), rt, 0)

	_, err := c.Execute(context.Background(), "_result_ = 1", 1000)
	assert.ErrorIs(t, err, wire.ErrNotConnected)

	_, err = c.GetDocuments(context.Background())
	assert.ErrorIs(t, err, wire.ErrNotConnected)

	_, err = c.UIAvailable(context.Background())
	assert.ErrorIs(t, err, wire.ErrNotConnected)
}

func TestEmbeddedClient_UIAvailableReflectsRuntime(t *testing.T) {
	rt := runtime.NewMockRuntime(false)
	c := NewEmbeddedClient(testLogger(), rt, 0)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	up, err := c.UIAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, up)
}

package bridgeclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/jsonlinesrv"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
)

func startJSONLineServer(t *testing.T, uiUp bool) (host string, port int) {
	t.Helper()

	rt := runtime.NewMockRuntime(uiUp)
	cad := cadserver.New(testLogger(), rt, 0)
	srv := jsonlinesrv.New(testLogger(), cad)

	require.NoError(t, srv.Start("127.0.0.1", 0, true))

	t.Cleanup(func() {
		_ = srv.Stop()
		cad.Close()
	})

	addr := srv.Addr().(*net.TCPAddr)

	return "127.0.0.1", addr.Port
}

func TestSocketClient_ConnectAndExecute(t *testing.T) {
	host, port := startJSONLineServer(t, true)

	c := NewSocketClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	assert.True(t, c.IsConnected())

	result, err := c.Execute(context.Background(), "_result_ = 5 + 5", 1000)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.InDelta(t, 10.0, result.Result, 0.0001)
}

func TestSocketClient_GetVersionAndUIAvailable(t *testing.T) {
	host, port := startJSONLineServer(t, false)

	c := NewSocketClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	v, err := c.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cadserver.Version, v.Version)
	assert.False(t, v.GUIUp)

	up, err := c.UIAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, up)
}

// get_documents runs real CAD Python against the shared cadserver.Server the
// same as every other transport; MockRuntime's toy grammar can't execute it,
// so this only exercises that a script-level failure round-trips as an error
// over the JSON-line transport rather than being swallowed or misreported.
func TestSocketClient_GetDocumentsPropagatesScriptFailure(t *testing.T) {
	host, port := startJSONLineServer(t, true)

	c := NewSocketClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	_, err := c.GetDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

// A script-level failure travels back as a full envelope with a nil error,
// the same as EmbeddedClient.Execute — only a failure the request/reply
// round trip itself can't complete returns (nil, err).
func TestSocketClient_ScriptErrorBecomesFailedEnvelope(t *testing.T) {
	host, port := startJSONLineServer(t, true)

	c := NewSocketClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	result, err := c.Execute(context.Background(), "raise ValueError('boom')", 1000)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "boom")
}

func TestSocketClient_DisconnectStopsHealth(t *testing.T) {
	host, port := startJSONLineServer(t, true)

	c := NewSocketClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))

	require.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())
}

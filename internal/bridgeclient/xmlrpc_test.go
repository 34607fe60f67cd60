package bridgeclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/xmlrpcsrv"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

func startXMLRPCServer(t *testing.T, uiUp bool) (host string, port int) {
	t.Helper()

	rt := runtime.NewMockRuntime(uiUp)
	cad := cadserver.New(testLogger(), rt, 0)
	srv := xmlrpcsrv.New(testLogger(), cad)

	require.NoError(t, srv.Start("127.0.0.1", 0, true))

	t.Cleanup(func() {
		_ = srv.Stop(context.Background())
		cad.Close()
	})

	addr := srv.Addr().(*net.TCPAddr)

	return "127.0.0.1", addr.Port
}

func TestXMLRPCClient_ConnectAndExecute(t *testing.T) {
	host, port := startXMLRPCServer(t, true)

	c := NewXMLRPCClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	assert.True(t, c.IsConnected())

	result, err := c.Execute(context.Background(), "_result_ = 3 + 4", 1000)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.InDelta(t, 7.0, result.Result, 0.0001)
}

// A script-level failure travels back as a full envelope with a nil error,
// the same as EmbeddedClient.Execute — only a transport failure the RPC
// round trip itself can't complete returns (nil, err).
func TestXMLRPCClient_ScriptErrorBecomesFailedEnvelope(t *testing.T) {
	host, port := startXMLRPCServer(t, true)

	c := NewXMLRPCClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	result, err := c.Execute(context.Background(), "raise ValueError('boom')", 1000)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, wire.ErrorScript, result.ErrorKind)
	assert.Contains(t, result.ErrorMessage, "boom")
}

// get_object runs real CAD Python against the shared cadserver.Server;
// MockRuntime's toy grammar can't execute it, so this exercises that the
// resulting ScriptError round-trips as a Go error over XML-RPC.
func TestXMLRPCClient_GetObjectPropagatesScriptFailure(t *testing.T) {
	host, port := startXMLRPCServer(t, true)

	c := NewXMLRPCClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	_, err := c.GetObject(context.Background(), "Unnamed", "Box")

	var scriptErr *wire.ScriptError
	require.ErrorAs(t, err, &scriptErr)
}

func TestXMLRPCClient_GetVersionReportsGUIState(t *testing.T) {
	host, port := startXMLRPCServer(t, false)

	c := NewXMLRPCClient(testLogger(), host, port, time.Hour)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	v, err := c.GetVersion(context.Background())
	require.NoError(t, err)
	assert.False(t, v.GUIUp)
}

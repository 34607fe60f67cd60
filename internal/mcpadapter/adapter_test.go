package mcpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/bridgeclient"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/jsonlinesrv"
	"github.com/spkane/freecad-mcp-bridge/internal/config"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Mode = config.ModeEmbedded

	return cfg
}

func newTestRequest(args map[string]any) *mcp.CallToolRequest {
	raw, _ := json.Marshal(args)

	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: raw},
	}
}

func TestAdapter_ConnectSucceedsWithEmbeddedClient(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)

	require.NoError(t, a.Connect(context.Background()))
	assert.Equal(t, config.StateReady, a.State())

	require.NoError(t, a.Shutdown(context.Background()))
	assert.Equal(t, config.StateStopped, a.State())
}

func TestAdapter_HandlerRejectsUIRequiredToolWhenHeadless(t *testing.T) {
	rt := runtime.NewMockRuntime(false)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("get_selection")
	require.True(t, ok)
	require.True(t, d.RequiresUI)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "GUI not available")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, false, body["success"])
}

func TestAdapter_HandlerAllowsUIRequiredToolWhenGUIUp(t *testing.T) {
	// clear_selection's script targets a real CAD interpreter and is not
	// something MockRuntime's toy grammar can execute; this only checks
	// that the RequiresUI gate itself passes when the GUI is up, not that
	// the resulting script succeeds.
	rt := runtime.NewMockRuntime(true)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("clear_selection")
	require.True(t, ok)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(nil))
	require.NoError(t, err)

	if result.IsError {
		text := result.Content[0].(*mcp.TextContent).Text
		assert.NotContains(t, text, "GUI not available")
	}
}

func TestAdapter_LocalToolAnswersWithoutExecutingAScript(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("get_connection_status")
	require.True(t, ok)
	require.True(t, d.Local)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, `"connected":true`)
}

func TestAdapter_HandlerExecutesScriptBackedTool(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("execute_python")
	require.True(t, ok)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(map[string]any{"code": "_result_ = 9 + 1"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Equal(t, "10", text)
}

// The tests above all run against EmbeddedClient. This one drives the same
// handler over a real socket connection to a jsonlinesrv server, so the
// fault-envelope fix in bridgeclient's Execute (a script failure comes back
// as a Success: false envelope with a nil error, not (nil, err)) is exercised
// through the adapter itself, not just at the bridgeclient package's own
// test level.
func TestAdapter_HandlerReportsScriptErrorsOverSocketTransport(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	cad := cadserver.New(testLogger(), rt, 0)
	defer cad.Close()

	srv := jsonlinesrv.New(testLogger(), cad)
	require.NoError(t, srv.Start("127.0.0.1", 0, true))
	defer srv.Stop()

	addr := srv.Addr().(*net.TCPAddr)

	cfg := testConfig()
	cfg.Mode = config.ModeSocket

	client := bridgeclient.NewSocketClient(testLogger(), "127.0.0.1", addr.Port, time.Hour)
	a := New(testLogger(), cfg, client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("execute_python")
	require.True(t, ok)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(map[string]any{"code": "raise ValueError('over the wire')"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "over the wire")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, false, body["success"])
}

func TestAdapter_HandlerReportsScriptErrors(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	client := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	a := New(testLogger(), testConfig(), client)
	require.NoError(t, a.Connect(context.Background()))
	defer a.Shutdown(context.Background())

	d, ok := a.toolReg.Get("execute_python")
	require.True(t, ok)

	result, err := a.handlerFor(d)(context.Background(), newTestRequest(map[string]any{"code": "raise ValueError('nope')"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "nope")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, false, body["success"])
}

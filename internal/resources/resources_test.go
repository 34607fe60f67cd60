package resources

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/bridgeclient"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func connectedEmbeddedClient(t *testing.T, uiUp bool) bridgeclient.Client {
	t.Helper()

	rt := runtime.NewMockRuntime(uiUp)
	c := bridgeclient.NewEmbeddedClient(testLogger(), rt, 0)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Disconnect() })

	return c
}

func TestRegistry_HasCapabilitiesDocumentsAndConsole(t *testing.T) {
	toolReg := tools.NewRegistry()
	client := connectedEmbeddedClient(t, true)

	r := NewRegistry(toolReg, client)

	for _, uri := range []string{
		"freecad-bridge://capabilities",
		"freecad-bridge://documents",
		"freecad-bridge://console",
	} {
		_, ok := r.Get(uri)
		assert.True(t, ok, "missing resource %q", uri)
	}
}

func TestCapabilitiesManifest_ListsEveryRegisteredTool(t *testing.T) {
	toolReg := tools.NewRegistry()
	client := connectedEmbeddedClient(t, true)
	r := NewRegistry(toolReg, client)

	d, ok := r.Get("freecad-bridge://capabilities")
	require.True(t, ok)

	data, err := d.Read(context.Background())
	require.NoError(t, err)

	var m manifest
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Len(t, m.Tools, toolReg.Len())
	assert.Len(t, m.Resources, len(r.All()))

	names := make(map[string]bool, len(m.Tools))
	for _, ts := range m.Tools {
		names[ts.Name] = true
	}

	for _, d := range toolReg.All() {
		assert.True(t, names[d.Name], "capabilities manifest missing tool %q", d.Name)
	}
}

func TestDocumentsResource_PropagatesScriptFailureAgainstMockRuntime(t *testing.T) {
	toolReg := tools.NewRegistry()
	client := connectedEmbeddedClient(t, true)
	r := NewRegistry(toolReg, client)

	d, ok := r.Get("freecad-bridge://documents")
	require.True(t, ok)

	// The documents resource runs real CAD Python (a list comprehension)
	// that MockRuntime's toy grammar rejects, so the read fails with the
	// runtime's SyntaxError, as in cadserver's GetDocuments test.
	data, err := d.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError", "unexpected data %q", string(data))
}

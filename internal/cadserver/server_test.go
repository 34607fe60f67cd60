package cadserver

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

func TestServer_PingAndVersion(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	s := New(testLogger(), rt, 0)
	defer s.Close()

	assert.Equal(t, "pong", s.Ping())

	v := s.GetVersion()
	assert.Equal(t, Version, v.Version)
	assert.True(t, v.GUIUp)
}

func TestServer_ExecuteAppendsConsoleOutput(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	s := New(testLogger(), rt, 0)
	defer s.Close()

	result := s.Execute(context.Background(), "print('hello')", 1000)
	require.True(t, result.Success)

	lines := s.GetConsoleOutput(0)
	assert.Contains(t, lines, "hello")
}

// listDocumentsScript, activeDocumentScript, and getObjectScriptFmt are real
// CAD Python (attribute access, a list comprehension) the same way every
// tool script in internal/tools is; MockRuntime's toy grammar only
// understands one simple statement per line (literal or arithmetic
// assignment, raise, print, and a few builtins), so against it these three calls can
// only be exercised on their failure-propagation path. Correct decoding of
// a real host's response shape is covered directly below, and the scripts'
// wire-format symmetry with internal/tools/documents.go and objects.go is
// checked by inspection in DESIGN.md's grounding ledger.

func TestServer_GetDocuments_PropagatesScriptFailureAgainstMockRuntime(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	s := New(testLogger(), rt, 0)
	defer s.Close()

	_, err := s.GetDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestServer_GetActiveDocument_PropagatesScriptFailureAgainstMockRuntime(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	s := New(testLogger(), rt, 0)
	defer s.Close()

	_, err := s.GetActiveDocument(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestServer_GetObject_PropagatesScriptFailureAgainstMockRuntime(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	s := New(testLogger(), rt, 0)
	defer s.Close()

	_, err := s.GetObject(context.Background(), "Unnamed", "Box")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestDecodeDocuments_DecodesRealHostShapedPayload(t *testing.T) {
	result := wire.Ok([]any{
		map[string]any{"name": "Unnamed", "label": "Unnamed", "file_path": nil, "modified": false, "is_active": true},
	}, "", "", 0)

	docs, err := decodeDocuments(result)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Unnamed", docs[0].Name)
	assert.True(t, docs[0].IsActive)
}

func TestDecodeObject_DecodesRealHostShapedPayload(t *testing.T) {
	obj, err := decodeObject(map[string]any{"name": "Box", "label": "Box", "type_id": "Part::Box", "visibility": true})
	require.NoError(t, err)
	assert.Equal(t, "Box", obj.Name)
	assert.Equal(t, "Part::Box", obj.TypeID)
	assert.True(t, obj.Visibility)
}

func TestDocLookupExpr_DefaultsToActiveDocument(t *testing.T) {
	assert.Equal(t, "App.ActiveDocument", docLookupExpr(""))
	assert.Equal(t, `App.getDocument('Unnamed')`, docLookupExpr("Unnamed"))
}

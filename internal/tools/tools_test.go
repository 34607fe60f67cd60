package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_NoDuplicateNames(t *testing.T) {
	r := NewRegistry()

	seen := make(map[string]bool)
	for _, d := range r.All() {
		assert.False(t, seen[d.Name], "duplicate tool name %q", d.Name)
		seen[d.Name] = true
	}

	assert.Equal(t, r.Len(), len(r.All()))
	assert.True(t, r.Len() > 75, "expected a broad tool catalog, got %d", r.Len())
}

func TestNewRegistry_GetFindsRegisteredTool(t *testing.T) {
	r := NewRegistry()

	d, ok := r.Get("create_box")
	require.True(t, ok)
	assert.Equal(t, "objects", d.Category)

	_, ok = r.Get("does_not_exist")
	assert.False(t, ok)
}

func TestNewRegistry_EveryDescriptorIsScriptOrLocal(t *testing.T) {
	r := NewRegistry()

	for _, d := range r.All() {
		if d.Local {
			assert.NotNil(t, d.LocalHandler, "%s: Local tools need a LocalHandler", d.Name)
			assert.Nil(t, d.Script, "%s: Local tools should not also carry a Script", d.Name)

			continue
		}

		assert.NotNil(t, d.Script, "%s: script-backed tools need a Script func", d.Name)
	}
}

func TestNewRegistry_RequiresUIToolsAreViewOrSelectionFocused(t *testing.T) {
	r := NewRegistry()

	for _, d := range r.All() {
		if !d.RequiresUI {
			continue
		}

		assert.Contains(t, []string{"view", "objects"}, d.Category, "%s: unexpected RequiresUI category", d.Name)
	}
}

func TestDeleteObject_EmbedsNameThroughSaferepr(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("delete_object")
	require.True(t, ok)

	malicious := "Box'); os.system('rm -rf /"
	script := d.Script(map[string]any{"name": malicious})

	assert.NotContains(t, script, "os.system('rm -rf /'")
	assert.Contains(t, script, `'Box\'); os.system(\'rm -rf /'`)
}

func TestCreateBox_UsesDefaultsWhenArgsOmitted(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("create_box")
	require.True(t, ok)

	script := d.Script(map[string]any{})
	assert.Contains(t, script, "_obj.Length = 10")
	assert.Contains(t, script, "_obj.Width = 10")
	assert.Contains(t, script, "_obj.Height = 10")
}

func TestCreateBox_HonorsSuppliedDimensions(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("create_box")
	require.True(t, ok)

	script := d.Script(map[string]any{"length": 20.0, "width": 30.0, "height": 40.0})
	assert.Contains(t, script, "_obj.Length = 20")
	assert.Contains(t, script, "_obj.Width = 30")
	assert.Contains(t, script, "_obj.Height = 40")
}

func TestExecutePython_PassesCodeThroughVerbatim(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("execute_python")
	require.True(t, ok)

	code := "_result_ = 1 + 1"
	assert.Equal(t, code, d.Script(map[string]any{"code": code}))
}

func TestGetConnectionStatus_IsLocal(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("get_connection_status")
	require.True(t, ok)
	require.True(t, d.Local)

	v, err := d.LocalHandler(nil, LocalDeps{Connected: true, Mode: "xmlrpc"}, nil)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, m["connected"])
	assert.Equal(t, "xmlrpc", m["mode"])
}

func TestDocLookup_DefaultsToActiveDocument(t *testing.T) {
	assert.Equal(t, "App.ActiveDocument", docLookup(map[string]any{}))
	assert.Equal(t, `App.getDocument('MyDoc')`, docLookup(map[string]any{"document": "MyDoc"}))
}

func TestInputSchema_MarksRequiredParams(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("inspect_object")
	require.True(t, ok)

	schema := d.InputSchema()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "name")
	assert.NotContains(t, schema.Required, "document")
}

func TestExportTools_CoverEveryFormat(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"export_step", "export_iges", "export_stl", "export_obj", "export_3mf"} {
		_, ok := r.Get(name)
		assert.True(t, ok, "missing export tool %q", name)
	}
}

func TestBooleanOperation_MapsOperationToTypeID(t *testing.T) {
	r := NewRegistry()
	d, ok := r.Get("boolean_operation")
	require.True(t, ok)

	script := d.Script(map[string]any{"operation": "cut", "base": "Box", "tool": "Cylinder"})
	assert.True(t, strings.Contains(script, "Part::Cut"))
}

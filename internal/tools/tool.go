// Package tools holds the descriptor registry that maps each MCP tool to a
// parameterized CAD script template (spec §4.6, component C6). Every
// template embeds caller-supplied values through internal/saferepr, never
// through raw string formatting, so a value like `foo'); os.system('rm -rf
// /')` cannot escape its literal position in the generated script.
package tools

import (
	"context"

	"github.com/spkane/freecad-mcp-bridge/internal/saferepr"
)

// Param describes one named argument a tool accepts. Type follows the JSON
// Schema primitive names the registry's schema builder emits.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
	Enum        []string
}

// Descriptor is one tool: enough to register it with the MCP SDK and enough
// to build the script it runs.
type Descriptor struct {
	Name        string
	Category    string
	Description string
	Params      []Param
	// RequiresUI marks a tool that only works against a running CAD GUI
	// (spec §4.6: screenshots, viewport control, workbench activation).
	// The MCP adapter checks ui_available() before dispatching these.
	RequiresUI bool
	// Script builds the CAD-side script for one invocation from its
	// already-validated arguments. Nil for a Local tool.
	Script func(args map[string]any) string
	// Local marks a tool answered entirely from adapter/client-side state
	// (connection status, adapter environment) rather than by executing a
	// script on the CAD host. The MCP adapter dispatches these to
	// LocalHandler instead of client.Execute.
	Local bool
	// LocalHandler answers a Local tool's call directly. Nil for a
	// script-backed tool.
	LocalHandler func(ctx context.Context, deps LocalDeps, args map[string]any) (any, error)
}

// LocalDeps is what a Local tool's handler needs from the adapter that a
// script-backed tool would otherwise get by executing on the CAD host.
type LocalDeps struct {
	Connected  bool
	Mode       string
	Host       string
	XMLRPCPort int
	SocketPort int
	TimeoutMS  int
}

func str(args map[string]any, name string) string {
	v, _ := args[name].(string)

	return v
}

func strOr(args map[string]any, name, def string) string {
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}

	return def
}

func num(args map[string]any, name string) float64 {
	switch v := args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func numOr(args map[string]any, name string, def float64) float64 {
	if _, ok := args[name]; ok {
		return num(args, name)
	}

	return def
}

func boolOr(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}

	return def
}

func repr(v any) string { return saferepr.Repr(v) }

// uiGuard is prepended to every RequiresUI script template (spec §4.6: the
// guard belongs in the template itself, not only in the dispatcher's
// ui_available() check, so the contract holds even if a client reaches the
// CAD host through something other than this bridge). App.GuiUp is
// FreeCAD's own flag for whether the Gui module is actually initialized.
const uiGuard = `if not App.GuiUp:
    raise RuntimeError("GUI not available")
`

package tools

import (
	"context"
	"fmt"
)

// executionTools mirrors execution.py: the raw script escape hatch plus
// status/introspection tools; two of those (the Local ones) answer from the
// adapter's own state rather than building a script (spec §4.6, §4.8: "execute_python is the
// one tool whose parameter is itself untemplated script text").
func executionTools() []Descriptor {
	return []Descriptor{
		{
			Name:        "execute_python",
			Category:    "execution",
			Description: "Run an arbitrary script on the CAD host and return its result, stdout, and stderr.",
			Params: []Param{
				{Name: "code", Type: "string", Description: "Script source to run.", Required: true},
				{Name: "timeout_ms", Type: "number", Description: "Timeout in milliseconds."},
			},
			Script: func(args map[string]any) string {
				// execute_python is the one tool that passes its argument
				// through verbatim: the caller supplies the script itself,
				// there is no template to inject into.
				return str(args, "code")
			},
		},
		{
			Name:        "get_freecad_version",
			Category:    "execution",
			Description: "Report the CAD host's version and UI availability.",
			Script: func(args map[string]any) string {
				return `_result_ = {"version": App.Version(), "gui_up": App.GuiUp}`
			},
		},
		{
			Name:        "get_connection_status",
			Category:    "execution",
			Description: "Report whether the bridge client currently believes it is connected.",
			Local:       true,
			LocalHandler: func(ctx context.Context, deps LocalDeps, args map[string]any) (any, error) {
				return map[string]any{
					"connected": deps.Connected,
					"mode":      deps.Mode,
				}, nil
			},
		},
		{
			Name:        "get_console_output",
			Category:    "execution",
			Description: "Return the most recent lines of CAD console output.",
			Params: []Param{
				{Name: "n", Type: "number", Description: "Number of lines to return; 0 returns everything retained.", Default: 100},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_result_ = _console_tail(%d)`, int(numOr(args, "n", 100)))
			},
		},
		{
			Name:        "get_mcp_server_environment",
			Category:    "execution",
			Description: "Report the bridge adapter's own runtime environment: mode, host, ports, timeout.",
			Local:       true,
			LocalHandler: func(ctx context.Context, deps LocalDeps, args map[string]any) (any, error) {
				return map[string]any{
					"mode":        deps.Mode,
					"host":        deps.Host,
					"xmlrpc_port": deps.XMLRPCPort,
					"socket_port": deps.SocketPort,
					"timeout_ms":  deps.TimeoutMS,
				}, nil
			},
		},
	}
}

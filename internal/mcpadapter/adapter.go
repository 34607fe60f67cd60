// Package mcpadapter wires the tool and resource registries onto the
// official MCP SDK server (spec §4.8, component C8): registration, the
// stdio transport (default) and an optional HTTP transport, and the
// connect-with-retry / drain-on-shutdown lifecycle around the bridge
// client. Grounded on the teacher SDK's MCP-facing wiring (its
// internal/mcp/sdk_server.go, since superseded) and the plain
// mcp.NewServer/AddTool/Run usage found across the retrieved corpus.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spkane/freecad-mcp-bridge/internal/bridgeclient"
	"github.com/spkane/freecad-mcp-bridge/internal/config"
	"github.com/spkane/freecad-mcp-bridge/internal/resources"
	"github.com/spkane/freecad-mcp-bridge/internal/tools"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// Version is this adapter's own reported MCP server version, independent
// of the CAD host's version reported by get_freecad_version.
const Version = "1.0.0"

// Adapter owns the MCP server, the bridge client it forwards tool calls
// through, and the process-level lifecycle state machine (spec §4.9).
type Adapter struct {
	log     *slog.Logger
	cfg     *config.Config
	client  bridgeclient.Client
	toolReg *tools.Registry
	resReg  *resources.Registry
	server  *mcp.Server

	mu    sync.Mutex
	state config.LifecycleState

	// inflight tracks tool-handler invocations currently in progress, so
	// Shutdown can drain them before disconnecting the bridge client.
	inflight sync.WaitGroup
}

// New builds an Adapter around an already-constructed bridge client.
// Registration happens immediately; Connect must be called before Serve.
func New(log *slog.Logger, cfg *config.Config, client bridgeclient.Client) *Adapter {
	toolReg := tools.NewRegistry()
	resReg := resources.NewRegistry(toolReg, client)

	a := &Adapter{
		log:     log.With("component", "mcp_adapter"),
		cfg:     cfg,
		client:  client,
		toolReg: toolReg,
		resReg:  resReg,
		state:   config.StateNotStarted,
	}

	a.server = mcp.NewServer(&mcp.Implementation{
		Name:    "freecad-mcp-bridge",
		Version: Version,
	}, nil)

	a.registerTools()
	a.registerResources()

	client.OnStatusChange(a.onHealthStatusChange)

	return a
}

// State reports the current lifecycle state.
func (a *Adapter) State() config.LifecycleState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

func (a *Adapter) setState(s config.LifecycleState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// onHealthStatusChange is the bridge client's health-monitor callback (spec
// §4.9's lifecycle diagram: Ready --persistent health failure--> Degraded
// --recovery--> Ready). It only acts while the adapter is actually serving
// traffic — a health flap during Connecting/Draining/Stopped/Failed is
// either already handled by that state's own transition or moot.
func (a *Adapter) onHealthStatusChange(connected bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case !connected && a.state == config.StateReady:
		a.state = config.StateDegraded
		a.log.Warn("bridge connection degraded")
	case connected && a.state == config.StateDegraded:
		a.state = config.StateReady
		a.log.Info("bridge connection recovered")
	}
}

// Connect performs the startup connect-with-retry sequence from spec §4.9:
// exponential backoff up to five attempts before giving up and entering
// Failed.
func (a *Adapter) Connect(ctx context.Context) error {
	a.setState(config.StateConnecting)

	backoff := 250 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= 5; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := a.client.Connect(connectCtx)
		cancel()

		if err == nil {
			a.setState(config.StateReady)
			a.log.Info("bridge client connected", "attempt", attempt, "mode", a.cfg.Mode)

			return nil
		}

		lastErr = err
		a.log.Warn("bridge connect attempt failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			a.setState(config.StateFailed)

			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
	}

	a.setState(config.StateFailed)

	return fmt.Errorf("connect to bridge after 5 attempts: %w", lastErr)
}

// Shutdown drains in-flight work and disconnects the bridge client.
func (a *Adapter) Shutdown(ctx context.Context) error {
	a.setState(config.StateDraining)

	err := a.drainAndDisconnect(ctx)
	a.setState(config.StateStopped)

	return err
}

// drainAndDisconnect waits for handlerFor's in-flight tool calls to finish
// before disconnecting the bridge client, up to ctx's deadline. A tool call
// still running past the deadline is abandoned rather than blocking shutdown
// forever — its own context is not this one, so it keeps running until the
// bridge client underneath it goes away.
func (a *Adapter) drainAndDisconnect(ctx context.Context) error {
	drained := make(chan struct{})

	go func() {
		a.inflight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		a.log.Warn("shutdown deadline reached with tool calls still in flight")
	}

	return a.client.Disconnect()
}

// ServeStdio runs the MCP server on stdio until the context is cancelled.
func (a *Adapter) ServeStdio(ctx context.Context) error {
	return a.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler exposes the streamable-HTTP MCP transport, used when
// cfg.HTTPAddr is set (spec §6, MCP_HTTP_ADDR).
func (a *Adapter) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return a.server
	}, nil)
}

func (a *Adapter) registerTools() {
	for _, d := range a.toolReg.All() {
		d := d
		a.server.AddTool(&mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema(),
		}, a.handlerFor(d))
	}

	a.log.Info("registered tools", "count", a.toolReg.Len())
}

func (a *Adapter) handlerFor(d *tools.Descriptor) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a.inflight.Add(1)
		defer a.inflight.Done()

		args, err := parseArguments(req)
		if err != nil {
			return errorResult("failed to parse arguments: " + err.Error()), nil
		}

		if d.Local {
			v, err := d.LocalHandler(ctx, a.localDeps(), args)
			if err != nil {
				return errorResult(err.Error()), nil
			}

			return jsonResult(v), nil
		}

		if d.RequiresUI {
			up, err := a.client.UIAvailable(ctx)
			if err != nil {
				return errorResult("could not determine UI availability: " + err.Error()), nil
			}

			if !up {
				return failureResult(fmt.Sprintf("GUI not available — %s", d.Name), ""), nil
			}
		}

		script := d.Script(args)

		timeoutMS := a.cfg.TimeoutMS
		if v, ok := args["timeout_ms"]; ok {
			if f, ok := v.(float64); ok {
				timeoutMS = int(f)
			}
		}

		result, err := a.client.Execute(ctx, script, timeoutMS)
		if err != nil {
			return errorResult(classifyErr(err)), nil
		}

		if !result.Success {
			return failureResult(fmt.Sprintf("%s: %s", result.ErrorKind, result.ErrorMessage), result.ErrorTraceback), nil
		}

		return textResult(result), nil
	}
}

func (a *Adapter) localDeps() tools.LocalDeps {
	return tools.LocalDeps{
		Connected:  a.client.IsConnected(),
		Mode:       string(a.cfg.Mode),
		Host:       a.cfg.Host,
		XMLRPCPort: a.cfg.XMLRPCPort,
		SocketPort: a.cfg.SocketPort,
		TimeoutMS:  a.cfg.TimeoutMS,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", v))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func classifyErr(err error) string {
	if be, ok := err.(wire.BridgeError); ok {
		return fmt.Sprintf("%s: %s", be.Kind(), be.Error())
	}

	return err.Error()
}

func textResult(r *wire.ExecutionResult) *mcp.CallToolResult {
	data, err := json.Marshal(r.Result)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", r.Result))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

// failureResult reports a script exception, a timeout, or a headless-UI
// rejection: something the caller can act on, not a transport fault. MCP's
// error channel (IsError: true) is reserved for the latter, so this comes
// back as a successful call whose body carries the failure.
func failureResult(errMsg, traceback string) *mcp.CallToolResult {
	return jsonResult(map[string]any{
		"success":   false,
		"error":     errMsg,
		"traceback": traceback,
	})
}

func parseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, err
	}

	return args, nil
}

func (a *Adapter) registerResources() {
	for _, r := range a.resReg.All() {
		r := r
		a.server.AddResource(&mcp.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			data, err := r.Read(ctx)
			if err != nil {
				return nil, err
			}

			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      r.URI,
					MIMEType: r.MIMEType,
					Text:     string(data),
				}},
			}, nil
		})
	}

	a.log.Info("registered resources", "count", len(a.resReg.All()))
}

package bridgeclient

import (
	"context"
	"log/slog"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// EmbeddedClient calls directly into an in-process cadserver.Server,
// skipping both wire transports entirely (spec §4.5: "embedded mode is
// only meaningful when the MCP adapter runs inside the same process as the
// CAD host's interpreter"). It never goes stale, so it runs no health
// monitor of its own.
type EmbeddedClient struct {
	log       *slog.Logger
	rt        runtime.ScriptRuntime
	cad       *cadserver.Server
	connected bool

	maxCaptureBytes int
}

// NewEmbeddedClient wires an embedded client around rt. rt is nil when no
// in-process runtime is available on this build, in which case Connect
// fails with wire.ErrEmbeddedUnavailable (spec §4.5).
func NewEmbeddedClient(log *slog.Logger, rt runtime.ScriptRuntime, maxCaptureBytes int) *EmbeddedClient {
	return &EmbeddedClient{log: log.With("component", "embedded_client"), rt: rt, maxCaptureBytes: maxCaptureBytes}
}

func (c *EmbeddedClient) Connect(ctx context.Context) error {
	if c.rt == nil {
		return wire.ErrEmbeddedUnavailable
	}

	c.cad = cadserver.New(c.log, c.rt, c.maxCaptureBytes)
	c.connected = true

	return nil
}

func (c *EmbeddedClient) Disconnect() error {
	if c.cad != nil {
		c.cad.Close()
	}

	c.connected = false

	return nil
}

func (c *EmbeddedClient) IsConnected() bool { return c.connected }

// OnStatusChange is a no-op: an in-process call cannot go stale the way a
// network peer can, so EmbeddedClient runs no health monitor to report from.
func (c *EmbeddedClient) OnStatusChange(fn func(connected bool)) {}

func (c *EmbeddedClient) Execute(ctx context.Context, script string, timeoutMS int) (*wire.ExecutionResult, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	return c.cad.Execute(ctx, script, timeoutMS), nil
}

func (c *EmbeddedClient) GetDocuments(ctx context.Context) ([]wire.DocumentSummary, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	return c.cad.GetDocuments(ctx)
}

func (c *EmbeddedClient) GetActiveDocument(ctx context.Context) (*wire.DocumentSummary, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	return c.cad.GetActiveDocument(ctx)
}

func (c *EmbeddedClient) GetObject(ctx context.Context, document, name string) (*wire.ObjectDetails, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	return c.cad.GetObject(ctx, document, name)
}

func (c *EmbeddedClient) GetConsoleOutput(ctx context.Context, n int) ([]string, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	return c.cad.GetConsoleOutput(n), nil
}

func (c *EmbeddedClient) GetVersion(ctx context.Context) (*wire.VersionInfo, error) {
	if !c.connected {
		return nil, wire.ErrNotConnected
	}

	v := c.cad.GetVersion()

	return &v, nil
}

func (c *EmbeddedClient) UIAvailable(ctx context.Context) (bool, error) {
	if !c.connected {
		return false, wire.ErrNotConnected
	}

	return c.rt.UIAvailable(), nil
}

var _ Client = (*EmbeddedClient)(nil)
var _ Client = (*XMLRPCClient)(nil)
var _ Client = (*SocketClient)(nil)

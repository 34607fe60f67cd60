// Package bridgeclient defines the client-side abstraction over the CAD
// bridge server (spec §4.5, component C5) and its three implementations:
// XML-RPC, raw socket, and embedded. The MCP adapter (internal/mcpadapter)
// holds exactly one Client for the lifetime of the process and never
// branches on which implementation it holds.
package bridgeclient

import (
	"context"

	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// Client is the transport-agnostic surface the MCP adapter drives. Every
// method blocks until the CAD-side bridge server replies or the context is
// cancelled; none retries internally — retry policy belongs to the caller
// (spec §4.5: "callers decide whether a failure is worth retrying").
type Client interface {
	// Connect performs the initial handshake (a ping/get_version round
	// trip) and must succeed before any other method is called.
	Connect(ctx context.Context) error

	// Disconnect releases transport resources. A Client is single-use:
	// once disconnected it must not be reconnected.
	Disconnect() error

	// IsConnected reports the last known connection health, updated by the
	// background health-check loop where the implementation runs one.
	IsConnected() bool

	// Execute runs a script on the CAD host and returns its envelope.
	Execute(ctx context.Context, script string, timeoutMS int) (*wire.ExecutionResult, error)

	GetDocuments(ctx context.Context) ([]wire.DocumentSummary, error)
	GetActiveDocument(ctx context.Context) (*wire.DocumentSummary, error)
	GetObject(ctx context.Context, document, name string) (*wire.ObjectDetails, error)
	GetConsoleOutput(ctx context.Context, n int) ([]string, error)
	GetVersion(ctx context.Context) (*wire.VersionInfo, error)

	// UIAvailable reports the CAD host's capability directly, per spec §4.6
	// ("gate on a capability call, never by probing for a toolkit import").
	UIAvailable(ctx context.Context) (bool, error)

	// OnStatusChange registers a callback fired whenever the client's
	// connection health flips, edge-triggered on the underlying health
	// monitor's persistent-failure/recovery transitions. The embedded
	// client, which runs no health monitor, never calls it. Must be set
	// before Connect.
	OnStatusChange(fn func(connected bool))
}

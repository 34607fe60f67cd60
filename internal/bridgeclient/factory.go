package bridgeclient

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spkane/freecad-mcp-bridge/internal/config"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
)

// New builds the Client implementation named by cfg.Mode. embeddedRuntime
// is only consulted for config.ModeEmbedded and may be nil for the other
// two modes.
func New(log *slog.Logger, cfg *config.Config, embeddedRuntime runtime.ScriptRuntime) (Client, error) {
	interval := time.Duration(cfg.HealthcheckMS) * time.Millisecond

	switch cfg.Mode {
	case config.ModeXMLRPC:
		return NewXMLRPCClient(log, cfg.Host, cfg.XMLRPCPort, interval), nil
	case config.ModeSocket:
		return NewSocketClient(log, cfg.Host, cfg.SocketPort, interval), nil
	case config.ModeEmbedded:
		return NewEmbeddedClient(log, embeddedRuntime, cfg.MaxCaptureBytes), nil
	default:
		return nil, fmt.Errorf("unknown bridge client mode %q", cfg.Mode)
	}
}

// Package cadserver hosts the CAD-side bridge server: the shared method
// handlers behind the two peer transports (spec §4.4) and the request
// admission path they both funnel through. The XML-RPC and newline-JSON
// wire adapters live in the xmlrpcsrv and jsonlinesrv subpackages; both
// construct a *Server and translate their frame format to and from it.
package cadserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/consolelog"
	"github.com/spkane/freecad-mcp-bridge/internal/engine"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// Version is the bridge server's reported version, surfaced by get_version.
const Version = "1.0.0"

// Server implements the seven methods spec §4.4 lists for the XML-RPC
// surface (and, method-for-method, the JSON-line surface). Both transport
// servers hold a reference to the same Server instance, which is in turn
// backed by a single *engine.Engine — the single point of admission onto the
// CAD UI thread (spec §5: "the transport servers... block on C2 completion
// signals").
type Server struct {
	log     *slog.Logger
	engine  *engine.Engine
	rt      runtime.ScriptRuntime
	console *consolelog.RingBuffer
}

// New creates a CAD-side server around the given runtime.
func New(log *slog.Logger, rt runtime.ScriptRuntime, maxCaptureBytes int) *Server {
	return &Server{
		log:     log.With("component", "cadserver"),
		engine:  engine.New(log, rt, maxCaptureBytes),
		rt:      rt,
		console: consolelog.New(0),
	}
}

// Close tears down the underlying engine and dispatcher.
func (s *Server) Close() { s.engine.Stop() }

// Execute runs a caller-supplied script and returns its envelope, appending
// captured stdout to the shared console ring buffer.
func (s *Server) Execute(ctx context.Context, script string, timeoutMS int) *wire.ExecutionResult {
	result := s.engine.Execute(ctx, script, timeoutMS)
	if result.Stdout != "" {
		s.console.AppendLines(result.Stdout)
	}

	return result
}

// Ping answers the handshake round-trip (spec §4.5 "connect() runs a
// ping/get_version round-trip").
func (s *Server) Ping() string { return "pong" }

// GetVersion reports the CAD host's version and UI availability.
func (s *Server) GetVersion() wire.VersionInfo {
	return wire.VersionInfo{
		Version: Version,
		GUIUp:   s.rt.UIAvailable(),
	}
}

// GetConsoleOutput returns the last n lines of accumulated console output
// (0 or negative returns everything retained).
func (s *Server) GetConsoleOutput(n int) []string {
	return s.console.Last(n)
}

// GetDocuments runs a small introspection script to list open documents.
func (s *Server) GetDocuments(ctx context.Context) ([]wire.DocumentSummary, error) {
	result := s.engine.Execute(ctx, listDocumentsScript, wire.DefaultTimeoutMS)

	return decodeDocuments(result)
}

// GetActiveDocument runs a small introspection script for the active
// document, returning (nil, nil) when there is none.
func (s *Server) GetActiveDocument(ctx context.Context) (*wire.DocumentSummary, error) {
	result := s.engine.Execute(ctx, activeDocumentScript, wire.DefaultTimeoutMS)
	if !result.Success {
		return nil, fmt.Errorf("%s: %s", result.ErrorKind, result.ErrorMessage)
	}

	if result.Result == nil {
		return nil, nil
	}

	doc, err := decodeDocument(result.Result)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// GetObject runs a small introspection script for one named object.
func (s *Server) GetObject(ctx context.Context, doc, name string) (*wire.ObjectDetails, error) {
	script := getObjectScript(doc, name)

	result := s.engine.Execute(ctx, script, wire.DefaultTimeoutMS)
	if !result.Success {
		return nil, fmt.Errorf("%s: %s", result.ErrorKind, result.ErrorMessage)
	}

	obj, err := decodeObject(result.Result)
	if err != nil {
		return nil, err
	}

	return &obj, nil
}

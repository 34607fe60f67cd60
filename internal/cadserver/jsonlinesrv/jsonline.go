// Package jsonlinesrv implements the newline-delimited JSON-RPC transport
// server (spec §4.4, component C4), the second of the two peer transports
// wrapping cadserver.Server. Its per-connection read loop is grounded on
// the bufio.Scanner-driven CLITransport.ReadMessages pattern the teacher
// SDK's subprocess-facing transport uses, adapted from framing an outbound
// child process's stdout to framing an inbound TCP client's requests.
package jsonlinesrv

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// request is one line of client input.
type request struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// response is one line of server output. Result and Error are mutually
// exclusive, mirroring wire.ExecutionResult's own success/error split.
type response struct {
	ID     int64   `json:"id"`
	Result any     `json:"result,omitempty"`
	Error  *rpcErr `json:"error,omitempty"`
}

// rpcErr mirrors the wire error object spec §4.5 documents:
// {"id": int, "error": {"type": str, "message": str, "traceback": str?}}.
type rpcErr struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Traceback string `json:"traceback,omitempty"`
	Stdout    string `json:"stdout,omitempty"`
	Stderr    string `json:"stderr,omitempty"`
}

// Server accepts TCP connections and serves the same seven-method surface
// as xmlrpcsrv, one line of JSON per request and per response.
type Server struct {
	log *slog.Logger
	cad *cadserver.Server
	ln  net.Listener
	wg  sync.WaitGroup
}

// New wires a JSON-line server around cad. It does not bind until Start.
func New(log *slog.Logger, cad *cadserver.Server) *Server {
	return &Server{log: log.With("component", "jsonline_server"), cad: cad}
}

// Start binds host:port and begins accepting connections in the background.
func (s *Server) Start(host string, port int, loopbackOnly bool) error {
	if loopbackOnly && !isLoopback(host) {
		return fmt.Errorf("refusing to bind JSON-line server to non-loopback host %q without an explicit override", host)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("bind JSON-line listener: %w", err)
	}

	s.ln = ln

	s.wg.Add(1)

	go s.acceptLoop()

	s.log.Info("JSON-line server listening", "addr", ln.Addr().String())

	return nil
}

// Stop closes the listener and then waits for every open connection's
// handler to return, which happens once that connection's client hangs up.
func (s *Server) Stop() error {
	if s.ln == nil {
		return nil
	}

	err := s.ln.Close()
	s.wg.Wait()

	return err
}

// Addr returns the bound listener address, useful when Start was given port
// 0 and the OS chose one.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

func isLoopback(host string) bool {
	if host == "localhost" || host == "" {
		return true
	}

	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.wg.Add(1)

		go s.handleConn(conn)
	}
}

// handleConn runs one goroutine per connection reading lines via
// bufio.Scanner, and a per-connection fan-in write channel so concurrent
// in-flight requests (each dispatched to its own goroutine, since C2
// serializes anyway) can respond out of arrival order without corrupting
// each other's writes.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	writes := make(chan response, 16)

	var writerWG sync.WaitGroup

	writerWG.Add(1)

	go func() {
		defer writerWG.Done()

		enc := json.NewEncoder(conn)
		for resp := range writes {
			if err := enc.Encode(resp); err != nil {
				return
			}
		}
	}()

	var inflight sync.WaitGroup

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			writes <- response{Error: &rpcErr{Type: string(wire.ErrorProtocol), Message: "malformed request line: " + err.Error()}}

			continue
		}

		inflight.Add(1)

		go func(req request) {
			defer inflight.Done()

			writes <- s.dispatch(context.Background(), req)
		}(req)
	}

	inflight.Wait()
	close(writes)
	writerWG.Wait()
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	switch req.Method {
	case string(wire.MethodPing):
		return response{ID: req.ID, Result: s.cad.Ping()}

	case string(wire.MethodGetVersion):
		v := s.cad.GetVersion()

		return response{ID: req.ID, Result: v}

	case string(wire.MethodGetConsoleOutput):
		n := 0
		if raw, ok := req.Params["n"]; ok {
			n = asInt(raw)
		}

		return response{ID: req.ID, Result: s.cad.GetConsoleOutput(n)}

	case string(wire.MethodGetDocuments):
		docs, err := s.cad.GetDocuments(ctx)
		if err != nil {
			return errResponse(req.ID, wire.ErrorInternal, err.Error())
		}

		return response{ID: req.ID, Result: docs}

	case string(wire.MethodGetActiveDocument):
		doc, err := s.cad.GetActiveDocument(ctx)
		if err != nil {
			return errResponse(req.ID, wire.ErrorInternal, err.Error())
		}

		return response{ID: req.ID, Result: doc}

	case string(wire.MethodGetObject):
		docName, _ := req.Params["document"].(string)
		objName, _ := req.Params["name"].(string)

		obj, err := s.cad.GetObject(ctx, docName, objName)
		if err != nil {
			return errResponse(req.ID, wire.ErrorInternal, err.Error())
		}

		return response{ID: req.ID, Result: obj}

	case string(wire.MethodExecute):
		script, _ := req.Params["script"].(string)
		timeoutMS := wire.DefaultTimeoutMS

		if raw, ok := req.Params["timeout_ms"]; ok {
			timeoutMS = asInt(raw)
		}

		result := s.cad.Execute(ctx, script, timeoutMS)
		if !result.Success {
			return executeErrResponse(req.ID, result)
		}

		return response{ID: req.ID, Result: result}

	default:
		return errResponse(req.ID, wire.ErrorProtocol, "unknown method: "+req.Method)
	}
}

func errResponse(id int64, kind wire.ErrorKind, msg string) response {
	return response{ID: id, Error: &rpcErr{Type: string(kind), Message: msg}}
}

// executeErrResponse carries a script-level failure's traceback and captured
// output alongside type/message, so SocketClient.Execute can rebuild the
// same envelope EmbeddedClient.Execute returns directly.
func executeErrResponse(id int64, result *wire.ExecutionResult) response {
	return response{ID: id, Error: &rpcErr{
		Type:      string(result.ErrorKind),
		Message:   result.ErrorMessage,
		Traceback: result.ErrorTraceback,
		Stdout:    result.Stdout,
		Stderr:    result.Stderr,
	}}
}

func asInt(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	case int64:
		return int(x)
	default:
		return 0
	}
}

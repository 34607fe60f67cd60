package bridgeclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// SocketClient talks to the CAD-side bridge server's newline-JSON transport
// (internal/cadserver/jsonlinesrv). It is grounded on the pending-map-by-id
// demultiplexer the teacher SDK's protocol controller uses to correlate
// out-of-order subprocess replies with the goroutine awaiting each one,
// adapted from an stdio pipe to a persistent TCP connection.
type SocketClient struct {
	log    *slog.Logger
	addr   string
	health *healthMonitor

	mu      sync.Mutex
	conn    net.Conn
	nextID  int64
	pending map[int64]chan rawReply
}

type rawReply struct {
	result any
	errObj *rpcErrWire
}

// rpcErrWire mirrors the wire error object spec §4.5 documents:
// {"id": int, "error": {"type": str, "message": str, "traceback": str?}}.
type rpcErrWire struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Traceback string `json:"traceback,omitempty"`
	Stdout    string `json:"stdout,omitempty"`
	Stderr    string `json:"stderr,omitempty"`
}

type wireRequest struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

type wireResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcErrWire     `json:"error,omitempty"`
}

// NewSocketClient builds a client targeting host:port.
func NewSocketClient(log *slog.Logger, host string, port int, healthcheckInterval time.Duration) *SocketClient {
	c := &SocketClient{
		log:     log.With("component", "socket_client"),
		addr:    fmt.Sprintf("%s:%d", host, port),
		pending: make(map[int64]chan rawReply),
	}
	c.health = newHealthMonitor(c.log, healthcheckInterval, func(ctx context.Context) error {
		_, err := c.call(ctx, "ping", nil, nil)

		return err
	})

	return c
}

func (c *SocketClient) Connect(ctx context.Context) error {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return &wire.ConnectionError{Err: err}
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)

	if _, err := c.call(ctx, "ping", nil, nil); err != nil {
		return &wire.ConnectionError{Err: err}
	}

	c.health.start()

	return nil
}

func (c *SocketClient) Disconnect() error {
	c.health.stop()

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	return conn.Close()
}

func (c *SocketClient) IsConnected() bool { return c.health.isConnected() }

func (c *SocketClient) OnStatusChange(fn func(connected bool)) { c.health.setOnChange(fn) }

// readLoop is the single reader for the connection, demultiplexing replies
// by ID to whichever goroutine's call() is waiting on pending[id]. Requests
// may be written concurrently by multiple callers (spec §5: each Execute
// call blocks its own goroutine while C2 serializes CAD-side work), but
// exactly one goroutine ever reads.
func (c *SocketClient) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		var resp wireResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mu.Unlock()

		if !ok {
			continue
		}

		var value any
		if len(resp.Result) > 0 {
			_ = json.Unmarshal(resp.Result, &value)
		}

		ch <- rawReply{result: value, errObj: resp.Error}
	}

	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[int64]chan rawReply)
	c.mu.Unlock()

	for _, ch := range pending {
		ch <- rawReply{errObj: &rpcErrWire{Type: string(wire.ErrorConnectionLost), Message: "connection closed"}}
	}
}

// call issues one request and classifies a fault reply into a
// *wire.BridgeError. Used by every method except Execute, which needs the
// raw fault object to build a full envelope rather than a Go error.
func (c *SocketClient) call(ctx context.Context, method string, params map[string]any, out any) (any, error) {
	v, errObj, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if errObj != nil {
		return nil, classifySocketFault(errObj)
	}

	return v, nil
}

// roundTrip performs one request/reply exchange and returns the decoded
// result, the raw error object (if the server replied with one), or an error
// for a failure the round trip itself couldn't complete.
func (c *SocketClient) roundTrip(ctx context.Context, method string, params map[string]any) (any, *rpcErrWire, error) {
	c.mu.Lock()
	conn := c.conn

	if conn == nil {
		c.mu.Unlock()

		return nil, nil, wire.ErrNotConnected
	}

	c.nextID++
	id := c.nextID
	ch := make(chan rawReply, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	req := wireRequest{ID: id, Method: method, Params: params}

	line, err := json.Marshal(req)
	if err != nil {
		return nil, nil, &wire.ProtocolError{Detail: err.Error()}
	}

	line = append(line, '\n')

	if _, err := conn.Write(line); err != nil {
		return nil, nil, &wire.ConnectionError{Err: err}
	}

	select {
	case reply := <-ch:
		return reply.result, reply.errObj, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// classifySocketFault turns the wire error object back into a typed
// wire.BridgeError. Unlike the XML-RPC side's numeric fault codes, the
// JSON-line "type" field carries a script exception's dynamic type name
// (e.g. "ValueError") rather than the fixed ErrorScript sentinel once it
// comes out of the engine, so anything outside the fixed transport-error
// set below is treated as a script fault, with Type preserved as the
// exception's own type name rather than collapsed to a protocol error.
func classifySocketFault(e *rpcErrWire) error {
	switch wire.ErrorKind(e.Type) {
	case wire.ErrorTimeout:
		return &wire.TimeoutError{}
	case wire.ErrorUIUnavailable:
		return &wire.BridgeErrorUIUnavailable{Detail: e.Message}
	case wire.ErrorProtocol:
		return &wire.ProtocolError{Detail: e.Message}
	case wire.ErrorOverloaded:
		return wire.ErrOverloaded
	case wire.ErrorNotConnected, wire.ErrorConnectionLost:
		return wire.ErrNotConnected
	default:
		return &wire.ScriptError{ExceptionType: e.Type, Message: e.Message, Traceback: e.Traceback}
	}
}

// Execute mirrors EmbeddedClient.Execute's contract: a script-level failure
// comes back as a full envelope with Success:false and a nil error, never
// collapsed to a Go error the way a transport failure is. Only a failure the
// request/reply round trip itself can't complete returns (nil, err).
func (c *SocketClient) Execute(ctx context.Context, script string, timeoutMS int) (*wire.ExecutionResult, error) {
	if timeoutMS <= 0 {
		timeoutMS = wire.DefaultTimeoutMS
	}

	v, errObj, err := c.roundTrip(ctx, "execute", map[string]any{"script": script, "timeout_ms": timeoutMS})
	if err != nil {
		return nil, err
	}

	if errObj != nil {
		return &wire.ExecutionResult{
			Success:        false,
			ErrorKind:      wire.ErrorKind(errObj.Type),
			ErrorMessage:   errObj.Message,
			ErrorTraceback: errObj.Traceback,
			Stdout:         errObj.Stdout,
			Stderr:         errObj.Stderr,
		}, nil
	}

	m, _ := v.(map[string]any)

	return &wire.ExecutionResult{
		Success:   true,
		Result:    m["result"],
		Stdout:    stringOf(m["stdout"]),
		Stderr:    stringOf(m["stderr"]),
		ElapsedMS: floatOf(m["elapsed_ms"]),
	}, nil
}

func (c *SocketClient) GetDocuments(ctx context.Context) ([]wire.DocumentSummary, error) {
	v, err := c.call(ctx, "get_documents", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeDocumentList(v)
}

func (c *SocketClient) GetActiveDocument(ctx context.Context) (*wire.DocumentSummary, error) {
	v, err := c.call(ctx, "get_active_document", nil, nil)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, nil
	}

	doc := decodeDocument(v)

	return &doc, nil
}

func (c *SocketClient) GetObject(ctx context.Context, document, name string) (*wire.ObjectDetails, error) {
	v, err := c.call(ctx, "get_object", map[string]any{"document": document, "name": name}, nil)
	if err != nil {
		return nil, err
	}

	obj := decodeObject(v)

	return &obj, nil
}

func (c *SocketClient) GetConsoleOutput(ctx context.Context, n int) ([]string, error) {
	v, err := c.call(ctx, "get_console_output", map[string]any{"n": n}, nil)
	if err != nil {
		return nil, err
	}

	arr, _ := v.([]any)
	out := make([]string, len(arr))

	for i, e := range arr {
		out[i] = stringOf(e)
	}

	return out, nil
}

func (c *SocketClient) GetVersion(ctx context.Context) (*wire.VersionInfo, error) {
	v, err := c.call(ctx, "get_version", nil, nil)
	if err != nil {
		return nil, err
	}

	m, _ := v.(map[string]any)

	return &wire.VersionInfo{Version: stringOf(m["version"]), GUIUp: boolOf(m["gui_up"])}, nil
}

func (c *SocketClient) UIAvailable(ctx context.Context) (bool, error) {
	v, err := c.GetVersion(ctx)
	if err != nil {
		return false, err
	}

	return v.GUIUp, nil
}

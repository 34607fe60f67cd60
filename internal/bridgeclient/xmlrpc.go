package bridgeclient

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// XMLRPCClient talks to the CAD-side bridge server's XML-RPC transport
// (internal/cadserver/xmlrpcsrv) over HTTP.
type XMLRPCClient struct {
	log     *slog.Logger
	url     string
	http    *http.Client
	health  *healthMonitor
}

// NewXMLRPCClient builds a client targeting http://host:port/RPC2.
func NewXMLRPCClient(log *slog.Logger, host string, port int, healthcheckInterval time.Duration) *XMLRPCClient {
	c := &XMLRPCClient{
		log:  log.With("component", "xmlrpc_client"),
		url:  fmt.Sprintf("http://%s:%d/RPC2", host, port),
		http: &http.Client{Timeout: 60 * time.Second},
	}
	c.health = newHealthMonitor(c.log, healthcheckInterval, func(ctx context.Context) error {
		_, err := c.call(ctx, "ping")

		return err
	})

	return c
}

func (c *XMLRPCClient) Connect(ctx context.Context) error {
	if _, err := c.call(ctx, "ping"); err != nil {
		return &wire.ConnectionError{Err: err}
	}

	if _, err := c.call(ctx, "get_version"); err != nil {
		return &wire.ConnectionError{Err: err}
	}

	c.health.start()

	return nil
}

func (c *XMLRPCClient) Disconnect() error {
	c.health.stop()

	return nil
}

func (c *XMLRPCClient) IsConnected() bool { return c.health.isConnected() }

func (c *XMLRPCClient) OnStatusChange(fn func(connected bool)) { c.health.setOnChange(fn) }

// Execute mirrors EmbeddedClient.Execute's contract: a script-level failure
// (timeout, UI-unavailable, a raised exception) comes back as a full
// envelope with Success:false and a nil error, never collapsed to a Go
// error the way a transport failure is. Only a fault the RPC round trip
// itself can't complete — an unreachable host, a malformed response —
// returns (nil, err).
func (c *XMLRPCClient) Execute(ctx context.Context, script string, timeoutMS int) (*wire.ExecutionResult, error) {
	if timeoutMS <= 0 {
		timeoutMS = wire.DefaultTimeoutMS
	}

	v, fault, err := c.roundTrip(ctx, "execute", script, timeoutMS)
	if err != nil {
		return nil, err
	}

	if fault != nil {
		return &wire.ExecutionResult{
			Success:        false,
			ErrorKind:      kindForFaultCode(intOf(fault["faultCode"])),
			ErrorMessage:   stringOf(fault["faultString"]),
			ErrorTraceback: stringOf(fault["traceback"]),
			Stdout:         stringOf(fault["stdout"]),
			Stderr:         stringOf(fault["stderr"]),
		}, nil
	}

	m, _ := v.(map[string]any)

	return &wire.ExecutionResult{
		Success:   true,
		Result:    m["value"],
		Stdout:    stringOf(m["stdout"]),
		Stderr:    stringOf(m["stderr"]),
		ElapsedMS: floatOf(m["execution_time_ms"]),
	}, nil
}

func (c *XMLRPCClient) GetDocuments(ctx context.Context) ([]wire.DocumentSummary, error) {
	v, err := c.call(ctx, "get_documents")
	if err != nil {
		return nil, err
	}

	return decodeDocumentList(v)
}

func (c *XMLRPCClient) GetActiveDocument(ctx context.Context) (*wire.DocumentSummary, error) {
	v, err := c.call(ctx, "get_active_document")
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, nil
	}

	doc := decodeDocument(v)

	return &doc, nil
}

func (c *XMLRPCClient) GetObject(ctx context.Context, document, name string) (*wire.ObjectDetails, error) {
	v, err := c.call(ctx, "get_object", document, name)
	if err != nil {
		return nil, err
	}

	obj := decodeObject(v)

	return &obj, nil
}

func (c *XMLRPCClient) GetConsoleOutput(ctx context.Context, n int) ([]string, error) {
	v, err := c.call(ctx, "get_console_output", n)
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

func (c *XMLRPCClient) GetVersion(ctx context.Context) (*wire.VersionInfo, error) {
	v, err := c.call(ctx, "get_version")
	if err != nil {
		return nil, err
	}

	m, _ := v.(map[string]any)

	return &wire.VersionInfo{Version: stringOf(m["version"]), GUIUp: boolOf(m["gui_up"])}, nil
}

func (c *XMLRPCClient) UIAvailable(ctx context.Context) (bool, error) {
	v, err := c.GetVersion(ctx)
	if err != nil {
		return false, err
	}

	return v.GUIUp, nil
}

// call issues one XML-RPC round trip and classifies a fault into a
// *wire.BridgeError. Used by every method except Execute, which needs the
// raw fault body to build a full envelope rather than a Go error.
func (c *XMLRPCClient) call(ctx context.Context, method string, params ...any) (any, error) {
	v, fault, err := c.roundTrip(ctx, method, params...)
	if err != nil {
		return nil, err
	}

	if fault != nil {
		return nil, classifyFault(fault)
	}

	return v, nil
}

// roundTrip performs one XML-RPC request and returns the decoded value, the
// raw fault struct (if the server responded with a <fault>), or an error for
// a failure the RPC round trip itself couldn't complete.
func (c *XMLRPCClient) roundTrip(ctx context.Context, method string, params ...any) (any, map[string]any, error) {
	body, err := encodeCall(method, params)
	if err != nil {
		return nil, nil, &wire.ProtocolError{Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, &wire.ConnectionError{Err: err}
	}

	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &wire.ConnectionError{Err: err}
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &wire.ConnectionError{Err: err}
	}

	return decodeResponse(raw)
}

func stringOf(v any) string {
	s, _ := v.(string)

	return s
}

func boolOf(v any) bool {
	b, _ := v.(bool)

	return b
}

func floatOf(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, _ := strconv.ParseFloat(x, 64)

		return f
	default:
		return 0
	}
}

func intOf(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	default:
		return 0
	}
}

func decodeDocumentList(v any) ([]wire.DocumentSummary, error) {
	arr, _ := v.([]any)
	out := make([]wire.DocumentSummary, len(arr))

	for i, e := range arr {
		out[i] = decodeDocument(e)
	}

	return out, nil
}

func decodeDocument(v any) wire.DocumentSummary {
	m, _ := v.(map[string]any)

	return wire.DocumentSummary{
		Name:     stringOf(m["name"]),
		Label:    stringOf(m["label"]),
		FilePath: stringOf(m["file_path"]),
		Modified: boolOf(m["modified"]),
		IsActive: boolOf(m["is_active"]),
	}
}

func decodeObject(v any) wire.ObjectDetails {
	m, _ := v.(map[string]any)

	return wire.ObjectDetails{
		Name:       stringOf(m["name"]),
		Label:      stringOf(m["label"]),
		TypeID:     stringOf(m["type_id"]),
		Visibility: boolOf(m["visibility"]),
	}
}

// --- minimal outbound XML-RPC encoding/decoding, symmetric to xmlrpcsrv's ---

func encodeCall(method string, params []any) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	xml.EscapeText(&buf, []byte(method))
	buf.WriteString("</methodName><params>")

	for _, p := range params {
		buf.WriteString("<param><value>")
		writeValue(&buf, p)
		buf.WriteString("</value></param>")
	}

	buf.WriteString("</params></methodCall>")

	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) {
	switch x := v.(type) {
	case string:
		buf.WriteString("<string>")
		xml.EscapeText(buf, []byte(x))
		buf.WriteString("</string>")
	case int:
		fmt.Fprintf(buf, "<int>%d</int>", x)
	case int64:
		fmt.Fprintf(buf, "<int>%d</int>", x)
	case bool:
		if x {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	default:
		xml.EscapeText(buf, []byte(fmt.Sprintf("%v", x)))
	}
}

type xmlValue struct {
	String  *string   `xml:"string"`
	Int     *string   `xml:"int"`
	I4      *string   `xml:"i4"`
	Boolean *string   `xml:"boolean"`
	Struct  *xmlStruct `xml:"struct"`
	Array   *xmlArray `xml:"array"`
}

type xmlStruct struct {
	Members []xmlMember `xml:"member"`
}

type xmlMember struct {
	Name  string   `xml:"name"`
	Value xmlValue `xml:"value"`
}

type xmlArray struct {
	Values []xmlValue `xml:"data>value"`
}

type xmlMethodResponse struct {
	XMLName xml.Name    `xml:"methodResponse"`
	Params  *xmlParams  `xml:"params"`
	Fault   *xmlFault   `xml:"fault"`
}

type xmlParams struct {
	Param struct {
		Value xmlValue `xml:"value"`
	} `xml:"param"`
}

type xmlFault struct {
	Value xmlValue `xml:"value"`
}

// decodeResponse decodes one XML-RPC methodResponse body. A <fault> comes
// back as a raw struct rather than an immediately-classified error, so
// Execute can preserve the traceback/stdout/stderr members a script-level
// fault carries alongside faultCode/faultString.
func decodeResponse(raw []byte) (any, map[string]any, error) {
	var resp xmlMethodResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return nil, nil, &wire.ProtocolError{Detail: "malformed XML-RPC response: " + err.Error()}
	}

	if resp.Fault != nil {
		fault, _ := decodeXMLValue(resp.Fault.Value).(map[string]any)

		return nil, fault, nil
	}

	if resp.Params == nil {
		return nil, nil, nil
	}

	return decodeXMLValue(resp.Params.Param.Value), nil, nil
}

func classifyFault(m map[string]any) error {
	msg := stringOf(m["faultString"])
	code := intOf(m["faultCode"])

	switch code {
	case 100:
		return &wire.TimeoutError{}
	case 101:
		return &wire.BridgeErrorUIUnavailable{Detail: msg}
	case 102:
		return &wire.ScriptError{Message: msg}
	case 104:
		return wire.ErrOverloaded
	case 105:
		return wire.ErrNotConnected
	default:
		return &wire.ProtocolError{Detail: msg}
	}
}

// kindForFaultCode is classifyFault's inverse, mapping a fault code back to
// the wire.ErrorKind Execute's envelope carries. Symmetric with
// xmlrpcsrv.faultCodeFor on the server side.
func kindForFaultCode(code int) wire.ErrorKind {
	switch code {
	case 100:
		return wire.ErrorTimeout
	case 101:
		return wire.ErrorUIUnavailable
	case 102:
		return wire.ErrorScript
	case 103:
		return wire.ErrorProtocol
	case 104:
		return wire.ErrorOverloaded
	case 105:
		return wire.ErrorNotConnected
	default:
		return wire.ErrorInternal
	}
}

func decodeXMLValue(v xmlValue) any {
	switch {
	case v.String != nil:
		return *v.String
	case v.Int != nil:
		n, _ := strconv.Atoi(*v.Int)

		return float64(n)
	case v.I4 != nil:
		n, _ := strconv.Atoi(*v.I4)

		return float64(n)
	case v.Boolean != nil:
		return *v.Boolean == "1"
	case v.Struct != nil:
		m := make(map[string]any, len(v.Struct.Members))
		for _, mem := range v.Struct.Members {
			m[mem.Name] = decodeXMLValue(mem.Value)
		}

		return m
	case v.Array != nil:
		arr := make([]any, len(v.Array.Values))
		for i, e := range v.Array.Values {
			arr[i] = decodeXMLValue(e)
		}

		return arr
	default:
		return nil
	}
}

package wire

import (
	"errors"
	"fmt"
)

// ErrorKind is the symbolic tag carried on every error envelope (spec §7).
type ErrorKind string

const (
	ErrorConfigInvalid   ErrorKind = "ConfigInvalid"
	ErrorNotConnected    ErrorKind = "NotConnected"
	ErrorConnectionLost  ErrorKind = "ConnectionLost"
	ErrorTimeout         ErrorKind = "Timeout"
	ErrorOverloaded      ErrorKind = "Overloaded"
	ErrorUIUnavailable   ErrorKind = "UIUnavailable"
	ErrorScript          ErrorKind = "ScriptError"
	ErrorProtocol        ErrorKind = "ProtocolError"
	ErrorInternal        ErrorKind = "Internal"
)

// BridgeError is the base interface implemented by every typed error in this
// module, mirroring the teacher's ClaudeSDKError marker interface.
type BridgeError interface {
	error
	Kind() ErrorKind
}

// Sentinel errors for commonly checked conditions.
var (
	ErrNotConnected      = errors.New("bridge client not connected")
	ErrAlreadyConnected  = errors.New("bridge client already connected")
	ErrClientClosed      = errors.New("bridge client closed: clients are single-use")
	ErrOverloaded        = errors.New("dispatcher queue full")
	ErrDispatcherStopped = errors.New("dispatcher stopped")
	ErrRequestTimeout    = errors.New("request timed out")
	ErrEmbeddedUnavailable = errors.New("embedded runtime not available on this build")
)

// ScriptError indicates the script raised an exception inside the runtime.
type ScriptError struct {
	ExceptionType string
	Message       string
	Traceback     string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.ExceptionType, e.Message)
}

func (e *ScriptError) Kind() ErrorKind { return ErrorScript }

// TimeoutError indicates a script exceeded its timeout budget. The job may
// still be running in the background; see the dispatcher's abandonment
// contract.
type TimeoutError struct {
	TimeoutMS int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("script exceeded timeout of %dms", e.TimeoutMS)
}

func (e *TimeoutError) Kind() ErrorKind { return ErrorTimeout }

// ConnectionError indicates a transport-level failure talking to the CAD-side
// bridge server.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection lost: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Kind() ErrorKind { return ErrorConnectionLost }

// BridgeErrorUIUnavailable indicates a call required the CAD host's UI
// thread (e.g. a dialog-driven operation) while running headless.
type BridgeErrorUIUnavailable struct {
	Detail string
}

func (e *BridgeErrorUIUnavailable) Error() string { return "UI unavailable: " + e.Detail }

func (e *BridgeErrorUIUnavailable) Kind() ErrorKind { return ErrorUIUnavailable }

// ProtocolError indicates a malformed request or response frame.
type ProtocolError struct {
	Detail string
}

func (e *ProtocolError) Error() string { return "protocol error: " + e.Detail }

func (e *ProtocolError) Kind() ErrorKind { return ErrorProtocol }

// ConfigError indicates a configuration parse/validate failure at startup.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Detail }

func (e *ConfigError) Kind() ErrorKind { return ErrorConfigInvalid }

// Compile-time verification that every typed error implements BridgeError.
var (
	_ BridgeError = (*ScriptError)(nil)
	_ BridgeError = (*TimeoutError)(nil)
	_ BridgeError = (*ConnectionError)(nil)
	_ BridgeError = (*ProtocolError)(nil)
	_ BridgeError = (*ConfigError)(nil)
	_ BridgeError = (*BridgeErrorUIUnavailable)(nil)
)

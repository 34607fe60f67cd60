// Package runtime defines the ScriptRuntime capability (spec §4.1, component
// C1) — the sole interface between the bridge and the CAD process's
// scripting interpreter. The real CAD interpreter is an external
// collaborator (see spec §1 Out of scope); this package also ships
// MockRuntime, a reference implementation used to exercise the dispatcher,
// engine, and transport layers without a real CAD host attached.
package runtime

import "context"

// ScriptRuntime executes script strings inside the CAD process's
// interpreter. All Run calls must be issued from the UI thread when the UI
// is up; the runtime itself makes no threading guarantees beyond that.
type ScriptRuntime interface {
	// Run executes script in a fresh variable mapping pre-populated with the
	// CAD module aliases, and returns the value assigned to the designated
	// return slot (nil if absent) plus captured stdout/stderr. It returns an
	// error if the script raised — callers inspect the concrete error type
	// to build the traceback and exception type name for the envelope.
	Run(ctx context.Context, script string) (value any, stdout string, stderr string, err error)

	// UIAvailable reports whether the CAD process was started with its
	// graphical shell and the event loop is running. Implementations MUST
	// answer this directly rather than by probing for the GUI toolkit
	// library's presence, since the toolkit is resident even in headless
	// mode.
	UIAvailable() bool
}

// ScriptRaisedError is returned by ScriptRuntime.Run when the script itself
// raised, as opposed to a transport/dispatcher-level failure. ExceptionType
// and Traceback let the execution engine build a ScriptError envelope.
type ScriptRaisedError struct {
	ExceptionType string
	Message       string
	Traceback     string
}

func (e *ScriptRaisedError) Error() string { return e.ExceptionType + ": " + e.Message }

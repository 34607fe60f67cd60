// Package engine implements the execution engine (spec §4.3, component C3):
// it turns a script string into a wire.ExecutionResult, funneling the actual
// run through a dispatcher so scripts serialize on the CAD UI thread.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spkane/freecad-mcp-bridge/internal/dispatcher"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// DefaultCaptureLimit is the default per-stream stdout/stderr cap (spec §4.3 step 7).
const DefaultCaptureLimit = 1 << 20 // 1 MiB

const truncationMarker = "\n...[truncated]"

// Engine wraps a Dispatcher with capture, timeout, and traceback handling.
type Engine struct {
	log          *slog.Logger
	dispatcher   *dispatcher.Dispatcher
	rt           runtime.ScriptRuntime
	captureLimit int
}

// New creates an execution engine bound to rt through a fresh dispatcher.
// captureLimit <= 0 uses DefaultCaptureLimit.
func New(log *slog.Logger, rt runtime.ScriptRuntime, captureLimit int) *Engine {
	if captureLimit <= 0 {
		captureLimit = DefaultCaptureLimit
	}

	d := dispatcher.New(log, rt, 0, 0)
	d.Start()

	return &Engine{
		log:          log.With("component", "engine"),
		dispatcher:   d,
		rt:           rt,
		captureLimit: captureLimit,
	}
}

// Stop tears down the underlying dispatcher.
func (e *Engine) Stop() { e.dispatcher.Stop() }

// Execute runs script and returns a fully-formed envelope. It never returns
// a Go error: every failure mode is folded into the envelope's error fields
// per spec §4.3's algorithm.
func (e *Engine) Execute(ctx context.Context, script string, timeoutMS int) *wire.ExecutionResult {
	start := time.Now()

	raw, err := e.dispatcher.Submit(ctx, func(jobCtx context.Context) (any, error) {
		return e.runOnce(jobCtx, script)
	}, timeoutMS)

	elapsed := time.Since(start)

	rr, _ := raw.(runResult)
	stdoutStr, stderrStr := e.truncate(rr.stdout), e.truncate(rr.stderr)

	if err == nil {
		return wire.Ok(rr.value, stdoutStr, stderrStr, elapsed)
	}

	return e.envelopeForError(err, stdoutStr, stderrStr, elapsed, timeoutMS)
}

// runOnce is the Job body submitted to the dispatcher: it executes exactly
// one script through the runtime and packs its captured streams alongside
// the result value, since Job only carries a single any-typed return slot.
func (e *Engine) runOnce(ctx context.Context, script string) (any, error) {
	value, stdout, stderr, err := e.rt.Run(ctx, script)

	return runResult{value, stdout, stderr}, err
}

// runResult carries the runtime's captured streams back through the
// dispatcher's single any-typed return slot.
type runResult struct {
	value  any
	stdout string
	stderr string
}

func (e *Engine) envelopeForError(
	err error,
	stdout, stderr string,
	elapsed time.Duration,
	timeoutMS int,
) *wire.ExecutionResult {
	var (
		timeoutErr *wire.TimeoutError
		raised     *runtime.ScriptRaisedError
	)

	switch {
	case errors.As(err, &timeoutErr):
		return wire.Fail(wire.ErrorTimeout, timeoutErr.Error(), "", stdout, stderr, elapsed)

	case errors.As(err, &raised):
		return wire.Fail(wire.ErrorKind(raised.ExceptionType), raised.Message, raised.Traceback, stdout, stderr, elapsed)

	case errors.Is(err, context.DeadlineExceeded):
		return wire.Fail(wire.ErrorTimeout, "deadline exceeded", "", stdout, stderr, elapsed)

	default:
		e.log.Error("unexpected engine failure", "error", err)

		return wire.Fail(wire.ErrorInternal, err.Error(), "", stdout, stderr, elapsed)
	}
}

// truncate caps a captured stream at the configured limit, appending a
// marker. The overflow itself is discarded: nothing in this bridge retains
// a script's full stdout/stderr past the captured envelope, so there is
// nowhere to hand a compressed tail to.
func (e *Engine) truncate(s string) string {
	if len(s) <= e.captureLimit {
		return s
	}

	e.log.Debug("capture buffer exceeded limit; overflow discarded",
		"original_bytes", len(s), "captured_bytes", e.captureLimit)

	return s[:e.captureLimit] + truncationMarker
}

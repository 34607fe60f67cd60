// Package dispatcher implements the main-thread dispatcher (spec §4.2,
// component C2): it serializes work from arbitrary goroutines onto a single
// "UI thread" worker, exactly the way a CAD host's event loop must be the
// only mutator of document state.
//
// The design is grounded on the teacher's protocol.Controller: a single
// owner goroutine draining a bounded channel of (job, reply) pairs, with
// producers blocking on a buffered reply channel under a timeout. There is
// no lock inside the worker itself — only the request queue and the done
// signal are shared.
package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// DefaultQueueCapacity is the recommended bound on the request queue (spec §4.2).
const DefaultQueueCapacity = 128

// DefaultTickInterval is how often the worker drains the queue when driven by
// a simulated GUI event loop tick (spec §4.2).
const DefaultTickInterval = 50 * time.Millisecond

// Job is a unit of work submitted to the dispatcher. It runs on the
// dispatcher's UI-thread-equivalent goroutine. Its ctx is cancelled once the
// submitting caller stops waiting (timeout, caller cancellation, or Stop);
// the dispatcher never interrupts a job, so one that ignores ctx keeps
// running to completion and its reply is discarded (spec §4.2 "no true
// cancellation").
type Job func(ctx context.Context) (any, error)

type job struct {
	ctx   context.Context
	run   Job
	reply chan result
}

type result struct {
	value any
	err   error
}

// Dispatcher owns a ScriptRuntime handle and serializes Job execution onto a
// single worker. When the runtime reports the UI as down, Submit runs the
// job inline on the caller's goroutine instead of queueing it, per spec
// §4.2's headless fallback.
type Dispatcher struct {
	log     *slog.Logger
	rt      runtime.ScriptRuntime
	queue   chan job
	tick    time.Duration
	done    chan struct{}
	stopped chan struct{}
}

// New creates a dispatcher with the given queue capacity and tick interval.
// Pass 0 for either to use the recommended defaults.
func New(log *slog.Logger, rt runtime.ScriptRuntime, capacity int, tick time.Duration) *Dispatcher {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}

	if tick <= 0 {
		tick = DefaultTickInterval
	}

	return &Dispatcher{
		log:     log.With("component", "dispatcher"),
		rt:      rt,
		queue:   make(chan job, capacity),
		tick:    tick,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the worker goroutine. It only pumps the queue while the
// runtime reports the UI as available; Submit falls back to running jobs
// inline otherwise, so Start is harmless (but unnecessary) to call in
// headless mode.
func (d *Dispatcher) Start() {
	go d.run()
}

// Stop signals the worker to exit and waits for it to drain in-flight ticks.
// Jobs already queued when Stop is called are abandoned; their replies are
// discarded, matching spec §4.2's "no true cancellation" contract.
func (d *Dispatcher) Stop() {
	select {
	case <-d.done:
		return
	default:
		close(d.done)
	}
	<-d.stopped
}

func (d *Dispatcher) run() {
	defer close(d.stopped)

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return

		case <-ticker.C:
			d.drainOnce()
		}
	}
}

// drainOnce runs every job currently queued to completion before returning,
// mirroring a single GUI event-loop tick (spec §4.2).
func (d *Dispatcher) drainOnce() {
	for {
		select {
		case j := <-d.queue:
			d.execute(j)
		default:
			return
		}
	}
}

func (d *Dispatcher) execute(j job) {
	value, err := j.run(j.ctx)

	select {
	case j.reply <- result{value: value, err: err}:
	default:
		// The caller already gave up (timeout or cancellation); the reply
		// is discarded per spec §4.2 — this is the orphaned-reply case the
		// worker must tolerate.
	}
}

// Submit runs job on the dispatcher's worker and blocks the caller until it
// completes, fails, or timeoutMS elapses. When the runtime reports the UI as
// down, job runs inline on the caller's goroutine instead.
func (d *Dispatcher) Submit(ctx context.Context, j Job, timeoutMS int) (any, error) {
	if !d.rt.UIAvailable() {
		return j(ctx)
	}

	reply := make(chan result, 1)

	// jobCtx is cancelled as soon as this caller stops waiting.
	jobCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case d.queue <- job{ctx: jobCtx, run: j, reply: reply}:
	default:
		return nil, wire.ErrOverloaded
	}

	timeout := time.Duration(timeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Duration(wire.DefaultTimeoutMS) * time.Millisecond
	}

	select {
	case r := <-reply:
		return r.value, r.err

	case <-time.After(timeout):
		d.log.Warn("job timed out; abandoning in-flight execution", "timeout_ms", timeoutMS)

		return nil, &wire.TimeoutError{TimeoutMS: timeoutMS}

	case <-ctx.Done():
		return nil, ctx.Err()

	case <-d.done:
		return nil, wire.ErrDispatcherStopped
	}
}

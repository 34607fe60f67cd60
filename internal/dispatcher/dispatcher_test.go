package dispatcher

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_SerializesConcurrentJobs(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	d := New(testLogger(), rt, 0, 5*time.Millisecond)
	d.Start()
	defer d.Stop()

	var mu sync.Mutex

	var order []int

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()

				return i, nil
			}, 1000)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()
	assert.Len(t, order, 8)
}

func TestDispatcher_TimeoutAbandonsJob(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	d := New(testLogger(), rt, 0, 5*time.Millisecond)
	d.Start()
	defer d.Stop()

	started := make(chan struct{})

	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
		close(started)
		<-ctx.Done()

		return nil, ctx.Err()
	}, 20)

	require.Error(t, err)

	var timeoutErr *wire.TimeoutError

	assert.ErrorAs(t, err, &timeoutErr)

	<-started
}

func TestDispatcher_OverloadedWhenQueueFull(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	// Tiny queue and long tick so the queue fills before it drains.
	d := New(testLogger(), rt, 1, time.Hour)
	d.Start()
	defer d.Stop()

	block := make(chan struct{})

	go func() {
		_, _ = d.Submit(context.Background(), func(ctx context.Context) (any, error) {
			<-block

			return nil, nil
		}, 5000)
	}()

	time.Sleep(20 * time.Millisecond)

	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) { return nil, nil }, 50)
	assert.ErrorIs(t, err, wire.ErrOverloaded)

	close(block)
}

func TestDispatcher_RunsInlineWhenUIUnavailable(t *testing.T) {
	rt := runtime.NewMockRuntime(false)
	d := New(testLogger(), rt, 0, time.Hour)
	// Deliberately not started: inline execution must not depend on run().

	v, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) { return "ok", nil }, 1000)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

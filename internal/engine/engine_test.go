package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_ExecuteSuccess(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	e := New(testLogger(), rt, 0)
	defer e.Stop()

	result := e.Execute(context.Background(), "_result_ = 1 + 2", 1000)

	require.True(t, result.Success)
	assert.InDelta(t, 3.0, result.Result, 0.0001)
}

func TestEngine_ExecuteScriptError(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	e := New(testLogger(), rt, 0)
	defer e.Stop()

	result := e.Execute(context.Background(), "raise ValueError('boom')", 1000)

	require.False(t, result.Success)
	assert.Equal(t, wire.ErrorKind("ValueError"), result.ErrorKind)
	assert.Contains(t, result.ErrorMessage, "boom")
}

func TestEngine_ExecuteTimeout(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	e := New(testLogger(), rt, 0)
	defer e.Stop()

	result := e.Execute(context.Background(), "while True: pass", 20)

	require.False(t, result.Success)
	assert.Equal(t, wire.ErrorTimeout, result.ErrorKind)
}

func TestEngine_TruncatesOversizedStdout(t *testing.T) {
	rt := runtime.NewMockRuntime(true)
	e := New(testLogger(), rt, 16)
	defer e.Stop()

	huge := strings.Repeat("x", 1000)
	result := e.Execute(context.Background(), "print("+quote(huge)+")", 1000)

	require.True(t, result.Success)
	assert.LessOrEqual(t, len(result.Stdout), 16+len(truncationMarker))
	assert.Contains(t, result.Stdout, "truncated")
}

func quote(s string) string { return "'" + s + "'" }

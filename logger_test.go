package colmem

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/source"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_ObserveBuild(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	_, err := bitmap.New(source.Of(true, false, true), memory.WithObserver(logger))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "build completed", rec["msg"])
	assert.Equal(t, "bitmap", rec["kind"])
	assert.Equal(t, float64(3), rec["len"])
	assert.Equal(t, float64(1), rec["bytes"])
}

func TestLogger_ObserveBuildError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).WithAllocator("limited")

	logger.ObserveBuild(memory.BuildEvent{Kind: "offset", Duration: time.Millisecond, Err: errors.New("boom")})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "build failed", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "limited", rec["allocator"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.ObserveBuild(memory.BuildEvent{Kind: "bitmap", Len: 1, Bytes: 1})
	assert.Empty(t, buf.String(), "successful builds log at debug level")

	logger.WithKind("bitmap").ObserveBuild(memory.BuildEvent{Kind: "bitmap", Err: memory.ErrMemoryLimit})
	assert.Contains(t, buf.String(), "build failed")
}

func TestLogger_Constructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelDebug))
	assert.NotNil(t, NewTextLogger(slog.LevelWarn))

	// Must not panic or write anything.
	NoopLogger().ObserveBuild(memory.BuildEvent{Kind: "bitmap", Err: errors.New("ignored")})
}

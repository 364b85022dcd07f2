package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "roster/internal/core/context"
)

func TestFromContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{zap.New(core).Sugar()}

	ctx := WithLogger(context.Background(), l)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext("trace-1", "req-1"))

	Info(ctx, "player created", "player_id", "p1")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "trace-1", fields["trace_id"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "p1", fields["player_id"])
	}
}

func TestFromContextWithoutLoggerUsesDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	l, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	if assert.NoError(t, err) {
		assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
		assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
	}
}

func TestBaseFields(t *testing.T) {
	assert.Equal(t, map[string]any{"service": "roster"}, baseFields(""))
	assert.Equal(t, map[string]any{"service": "roster", "backend": "sqlite"}, baseFields("sqlite"))
}

func TestNewTagsServiceAndBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.log")
	l, err := New(Config{Level: "info", OutputPaths: []string{path}, Backend: "redis"})
	require.NoError(t, err)

	l.Infow("ready")
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(raw, &line))
	assert.Equal(t, "roster", line["service"])
	assert.Equal(t, "redis", line["backend"])
}

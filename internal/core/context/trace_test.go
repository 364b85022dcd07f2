package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceRoundTrip(t *testing.T) {
	ctx := WithTrace(context.Background(), NewTraceContext("trace-1", ""))

	tr := GetTrace(ctx)
	if assert.NotNil(t, tr) {
		assert.Equal(t, "trace-1", tr.TraceID)
		assert.NotEmpty(t, tr.RequestID)
	}
	assert.Equal(t, tr.RequestID, GetRequestID(ctx))
}

func TestMissingTrace(t *testing.T) {
	assert.Nil(t, GetTrace(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}

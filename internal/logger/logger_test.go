package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	base := New(&Config{Level: "debug", Format: "json", Output: &buf, ServiceName: "test"})

	ctx := base.WithContext(context.Background())
	ctx = SetRunID(ctx, "run-1")
	ctx = SetSite(ctx, "stonehenge")
	ctx = SetProvider(ctx, "commons")

	assert.Equal(t, "run-1", GetRunID(ctx))
	assert.Equal(t, "stonehenge", GetSite(ctx))

	CtxInfo(ctx, "downloaded %d", 3)
	line := decodeLine(t, &buf)
	assert.Equal(t, "downloaded 3", line["message"])
	assert.Equal(t, "test", line["service"])
	assert.Equal(t, "run-1", line[FieldRunID])
	assert.Equal(t, "stonehenge", line[FieldSite])
	assert.Equal(t, "commons", line[FieldProvider])
	assert.Contains(t, line, "timestamp")
}

func TestEntryMetricFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := New(&Config{Format: "json", Output: &buf}).WithContext(context.Background())

	With(Fields{FieldScore: 12}).WithCount(2).WithStatus("ok").WithDuration(time.Now()).Info(ctx, "done")
	line := decodeLine(t, &buf)
	assert.EqualValues(t, 12, line[FieldScore])
	assert.EqualValues(t, 2, line[FieldCount])
	assert.Equal(t, "ok", line[FieldStatus])
	assert.Contains(t, line, FieldDurationMs)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	ctx := New(&Config{Level: "warn", Format: "json", Output: &buf}).WithContext(context.Background())

	CtxInfo(ctx, "hidden")
	assert.Zero(t, buf.Len())
	CtxWarn(ctx, "shown")
	assert.NotZero(t, buf.Len())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, GetDefault(), FromContext(context.Background()))
	assert.Same(t, GetDefault(), FromContext(nil))
}

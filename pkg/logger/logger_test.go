package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()

	l, err := NewLogger(&Config{Level: DebugLevel, Format: "json", AppName: "spinwin", Version: "test"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	l.logger.SetOutput(buf)
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogger_WithFieldsDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferedLogger(t)
	child := parent.WithField("route", "shop-a")

	parent.Info("parent")
	line := decodeLine(t, buf)
	assert.NotContains(t, line, "route")

	buf.Reset()
	child.Info("child")
	line = decodeLine(t, buf)
	assert.Equal(t, "shop-a", line["route"])
	assert.Equal(t, "spinwin", line["app"])
	assert.Equal(t, "test", line["version"])
}

func TestLogger_WithContext(t *testing.T) {
	l, buf := newBufferedLogger(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUsername(ctx, "alice")
	l.WithContext(ctx).WithError(errors.New("boom")).Error("failed")

	line := decodeLine(t, buf)
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "alice", line["username"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "error", line["level"])
}

func TestCustomJSONFormatter_ReservedKeys(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.WithField("message", "shadow").Info("real")

	line := decodeLine(t, buf)
	assert.Equal(t, "real", line["message"])
	assert.Equal(t, "shadow", line["fields.message"])
}

func TestLogger_LogAPIRequestLevels(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.LogAPIRequest("GET", "/api/analytics", 500, 0, "bob")
	line := decodeLine(t, buf)
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "bob", line["username"])

	buf.Reset()
	l.LogAPIRequest("GET", "/api/analytics", 200, 0, "")
	line = decodeLine(t, buf)
	assert.Equal(t, "info", line["level"])
	assert.NotContains(t, line, "username")
}

func TestLogger_LogPerformanceMetric(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.LogPerformanceMetric("base_set_load", 12, "ms", map[string]string{"route": "shop-a"})

	line := decodeLine(t, buf)
	assert.Equal(t, "base_set_load", line["metric"])
	assert.Equal(t, 12.0, line["value"])
	assert.Equal(t, "shop-a", line["route"])
	assert.Equal(t, "debug", line["level"])
}

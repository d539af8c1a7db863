package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-starter/framework/config"
	"github.com/km-arc/go-starter/framework/logging"
)

func testConfig(env, level string) *config.Config {
	return &config.Config{App: config.AppConfig{Name: "test", Env: env, LogLevel: level}}
}

func TestNew_ProductionWritesJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(testConfig("production", "info"), &buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	log.InfoContext(ctx, "hello", slog.Int("n", 1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-123", rec["request_id"])
	assert.Equal(t, "test", rec["app"])
}

func TestNew_TextOutsideProduction(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(testConfig("local", "debug"), &buf)

	log.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
	assert.NotContains(t, buf.String(), "request_id", "no id without context")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(testConfig("local", "warn"), &buf)

	log.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestDecorator_KeepsExtractorsAcrossWith(t *testing.T) {
	var buf bytes.Buffer
	extract := func(context.Context) (slog.Attr, bool) { return slog.String("k", "v"), true }
	h := logging.NewDecorator(slog.NewJSONHandler(&buf, nil), nil, extract)

	slog.New(h).WithGroup("g").With("a", 1).Info("m")
	assert.Contains(t, buf.String(), `"k":"v"`)
}

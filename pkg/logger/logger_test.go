package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "mixed case", input: "DeBuG", want: slog.LevelDebug},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logger.New("info", "text"))
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	var text bytes.Buffer
	logger.NewWithWriter(&text, "info", "text").Info("hello")
	assert.Contains(t, text.String(), "level=INFO")
	assert.Contains(t, text.String(), "hello")

	var jsonBuf bytes.Buffer
	logger.NewWithWriter(&jsonBuf, "info", "JSON").Info("hello")
	assert.Contains(t, jsonBuf.String(), `"level":"INFO"`)
	assert.Contains(t, jsonBuf.String(), `"msg":"hello"`)
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      string
		logFunc    func(*slog.Logger)
		wantOutput bool
	}{
		{
			name:       "debug visible at debug level",
			level:      "debug",
			logFunc:    func(l *slog.Logger) { l.Debug("test") },
			wantOutput: true,
		},
		{
			name:       "debug suppressed at info level",
			level:      "info",
			logFunc:    func(l *slog.Logger) { l.Debug("test") },
			wantOutput: false,
		},
		{
			name:       "info suppressed at warn level",
			level:      "warn",
			logFunc:    func(l *slog.Logger) { l.Info("test") },
			wantOutput: false,
		},
		{
			name:       "warn visible at warn level",
			level:      "warn",
			logFunc:    func(l *slog.Logger) { l.Warn("test") },
			wantOutput: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.logFunc(logger.NewWithWriter(&buf, tt.level, "text"))

			if tt.wantOutput {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.WithComponent(logger.NewWithWriter(&buf, "info", "text"), "vision")
	l.Info("identified")

	assert.Contains(t, buf.String(), "component=vision")
}

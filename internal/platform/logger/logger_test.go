package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	l, err := logger.New(buf, config.ServerConfig{LogLevel: "info", LogFormat: "json"})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("question created", slog.String("question_uuid", "abc"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1, "debug record should be filtered at info level")
	assert.Equal(t, "question created", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "abc", entries[0]["question_uuid"])
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	l, err := logger.New(buf, config.ServerConfig{LogLevel: "warn", LogFormat: "console"})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("pool exhausted", slog.Int("max_conns", 5))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "pool exhausted")
	assert.Contains(t, out, "max_conns")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := logger.New(&logger.TestLogBuffer{}, config.ServerConfig{LogLevel: "info", LogFormat: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, logger.ParseLevel(tt.name))
		})
	}
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	defaultLogger := slog.Default()
	customLogger, _ := logger.NewTestLogger(t)

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Same(t, tt.expected, logger.FromContextOrDefault(tt.ctx, defaultLogger))
		})
	}
}

func TestForComponent(t *testing.T) {
	t.Parallel()

	def, defBuf := logger.NewTestLogger(t)
	ctxLogger, ctxBuf := logger.NewTestLogger(t)

	logger.ForComponent(context.Background(), def, "question_store").Info("from default")
	ctx := logger.WithLogger(context.Background(), ctxLogger.With("trace_id", "t-1"))
	logger.ForComponent(ctx, def, "answer_store").Info("from context")

	defEntries, err := defBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, defEntries, 1)
	assert.Equal(t, "question_store", defEntries[0]["component"])

	ctxEntries, err := ctxBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, ctxEntries, 1)
	assert.Equal(t, "answer_store", ctxEntries[0]["component"])
	assert.Equal(t, "t-1", ctxEntries[0]["trace_id"])
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	t.Run("valid_logger", func(t *testing.T) {
		customLogger, _ := logger.NewTestLogger(t)
		ctx := logger.WithLogger(context.Background(), customLogger)
		assert.Same(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

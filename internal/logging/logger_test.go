package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		l, err := NewLogger(Config{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestNewLoggerInvalidPath(t *testing.T) {
	_, err := NewLogger(Config{OutputPaths: []string{"/nonexistent/dir/gortho.log"}})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestFieldsAreTyped(t *testing.T) {
	l, logs := newObservedLogger(zapcore.DebugLevel)

	l.Info("evaluated",
		String("project", "steiner.yaml"),
		Int("defined", 3),
		Float64("scale", 10),
		Bool("all", true),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
		Any("names", []string{"SNA"}),
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "steiner.yaml", fields["project"])
	assert.Equal(t, int64(3), fields["defined"])
	assert.Equal(t, 10.0, fields["scale"])
	assert.Equal(t, true, fields["all"])
	assert.Equal(t, time.Millisecond, fields["took"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, []interface{}{"SNA"}, fields["names"])
}

func TestLevelFiltering(t *testing.T) {
	l, logs := newObservedLogger(zapcore.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	assert.Equal(t, 2, logs.FilterMessage("shown").Len())
	assert.Zero(t, logs.FilterMessage("hidden").Len())
}

func TestWithAndNamed(t *testing.T) {
	l, logs := newObservedLogger(zapcore.InfoLevel)

	child := l.Named("watch").With(String("path", "p.yaml"))
	child.Info("changed")
	l.Info("root")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "watch", entries[0].LoggerName)
	assert.Equal(t, "p.yaml", entries[0].ContextMap()["path"])
	assert.Empty(t, entries[1].Context)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("x"))
	assert.NoError(t, l.Sync())
}

func TestDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	l, logs := newObservedLogger(zapcore.InfoLevel)
	SetDefault(l)
	SetDefault(nil)

	Default().Info("via default")
	assert.Equal(t, 1, logs.Len())
}

package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestLoggerLevels(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Warn})

	l.Info(context.Background(), "info %s", "message")
	assert.Empty(t, w.lines)

	l.Warn(context.Background(), "warn %s", "message")
	l.Error(context.Background(), "error %s", "message")
	assert.Len(t, w.lines, 2)
	assert.Contains(t, w.lines[0], "[warn] warn message")
	assert.Contains(t, w.lines[1], "[error] error message")
}

func TestLoggerLogMode(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Error})

	info := l.LogMode(Info)
	info.Info(context.Background(), "visible")
	assert.Len(t, w.lines, 1)

	// the original logger keeps its level
	l.Info(context.Background(), "hidden")
	assert.Len(t, w.lines, 1)
}

func TestLoggerTrace(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Info, SlowThreshold: time.Second})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO people (Name) VALUES ('Alice')", 1
	}, nil)
	assert.Len(t, w.lines, 1)
	assert.Contains(t, w.lines[0], "INSERT INTO people")
	assert.Contains(t, w.lines[0], "[rows:1]")
}

func TestLoggerTraceError(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Error})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "UPDATE people SET Name = 'Bob' WHERE Id = '1'", -1
	}, errors.New("table missing"))
	assert.Len(t, w.lines, 1)
	assert.Contains(t, w.lines[0], "table missing")
	assert.Contains(t, w.lines[0], "[rows:-]")
}

func TestLoggerTraceSilent(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Silent})

	called := false
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "", 0
	}, nil)
	assert.False(t, called)
	assert.Empty(t, w.lines)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Error(context.Background(), "dropped")
	})
}

func TestTraceOutputShape(t *testing.T) {
	w := &recordingWriter{}
	l := New(w, Config{LogLevel: Info})

	l.Trace(context.Background(), time.Now().Add(-time.Millisecond), func() (string, int64) {
		return "SELECT 1", 0
	}, nil)
	assert.Len(t, w.lines, 1)
	assert.True(t, strings.Contains(w.lines[0], "ms]"), "expected a duration in %q", w.lines[0])
}

package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})

	l.Info("entry added", FieldEntryID, "abc")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "entry_id=abc")
	assert.NotContains(t, out, "hidden")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf}).WithComponent(ComponentDaemon)

	l.Warn("poll failed")

	assert.Contains(t, buf.String(), "component=daemon")
	assert.Equal(t, ComponentDaemon, l.Component())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("loud"))
}

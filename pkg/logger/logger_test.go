package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerOutput(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newLogger(Config{Output: "JSON"}, &buf)
		require.NoError(t, err)

		l.Info("sale finalized", slogx.Duration("elapsed", 1500*time.Millisecond), slogx.Error(errors.New("boom")))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "sale finalized", record["msg"])
		assert.Equal(t, "INFO", record["level"])
		assert.EqualValues(t, 1500, record["elapsed"])
		assert.Equal(t, "boom", record["error"])
		assert.NotContains(t, record, ErrorVerboseKey)
	})

	t.Run("text by default", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newLogger(Config{}, &buf)
		require.NoError(t, err)

		l.Info("contribution processed")
		assert.Contains(t, buf.String(), `msg="contribution processed"`)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := newLogger(Config{Output: "GCP"}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestCustomLevels(t *testing.T) {
	testCases := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelError, "ERROR"},
		{LevelCritical, "CRITICAL"},
		{LevelCritical + 1, "CRITICAL+1"},
		{LevelPanic, "PANIC"},
		{LevelFatal, "FATAL"},
		{LevelFatal + 2, "FATAL+2"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := newLogger(Config{Output: "json"}, &buf)
			require.NoError(t, err)

			l.Log(context.Background(), tc.level, "msg")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tc.want, record["level"])
		})
	}
}

func TestErrorVerbose(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(Config{Output: "json", ErrorVerbose: true}, &buf)
	require.NoError(t, err)

	l.With("module", "crowdsale").Error("payout failed", slogx.Error(errors.New("sink unavailable")))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "crowdsale", record["module"])
	assert.Equal(t, "sink unavailable", record["error"])
	assert.Contains(t, record[ErrorVerboseKey], "sink unavailable")
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
	})

	testCases := []struct {
		name          string
		level         LogLevel
		expectedLevel slog.Level
	}{
		{name: "Debug level", level: LevelDebug, expectedLevel: slog.LevelDebug},
		{name: "Info level", level: LevelInfo, expectedLevel: slog.LevelInfo},
		{name: "Warn level", level: LevelWarn, expectedLevel: slog.LevelWarn},
		{name: "Error level", level: LevelError, expectedLevel: slog.LevelError},
		{name: "Upper case", level: LogLevel("DEBUG"), expectedLevel: slog.LevelDebug},
		{name: "Invalid level defaults to Info", level: LogLevel("invalid"), expectedLevel: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := SetupLogger(&buf, tc.level)

			assert.Same(t, logger, slog.Default())
			assert.True(t, logger.Enabled(context.Background(), tc.expectedLevel))
			if tc.expectedLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tc.expectedLevel-1))
			}

			slog.Error("test message", "key", "value")
			assert.Contains(t, buf.String(), "msg=\"test message\"")
			assert.Contains(t, buf.String(), "key=value")
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	assert.Equal(t, LevelInfo, LevelFromVerbosity(0, ""))
	assert.Equal(t, LevelWarn, LevelFromVerbosity(0, LevelWarn))
	assert.Equal(t, LevelDebug, LevelFromVerbosity(1, LevelWarn))
	assert.Equal(t, LevelDebug, LevelFromVerbosity(2, ""))
}

func TestMaskSensitive(t *testing.T) {
	assert.Equal(t, "<not set>", MaskSensitive(""))
	assert.Equal(t, "<set>", MaskSensitive("abcd"))
	assert.Equal(t, "ghp_...***", MaskSensitive("ghp_secret"))
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_BeforeInit(t *testing.T) {
	Logger = nil

	l := Get()

	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   zapcore.Level
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{name: "development debug", env: "development", level: zapcore.DebugLevel, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "production info", env: "production", level: zapcore.InfoLevel, enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "quiet cli", env: "development", level: zapcore.WarnLevel, enabled: zapcore.ErrorLevel, muted: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { Logger = nil })

			require.NoError(t, Init(tt.env, tt.level))

			core := Get().Core()
			assert.True(t, core.Enabled(tt.enabled))
			assert.False(t, core.Enabled(tt.muted))
			Sync()
		})
	}
}

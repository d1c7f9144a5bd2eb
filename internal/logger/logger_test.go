package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mode    string
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{"development default level", "development", "", zapcore.InfoLevel, false},
		{"production debug", "production", "debug", zapcore.DebugLevel, false},
		{"warn", "prod", "warn", zapcore.WarnLevel, false},
		{"bad level", "development", "loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.mode, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, OrNop(nil))
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{name: "nil config", cfg: nil},
		{name: "production json", cfg: &Config{Level: "info", ServiceName: "svc"}},
		{name: "development console", cfg: &Config{Level: "debug", Development: true}},
		{name: "unknown level", cfg: &Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestGet_BeforeInit(t *testing.T) {
	l := Get()
	require.NotNil(t, l)
	l.Info("discarded", zap.String("k", "v"))
}

func TestInit_ReplacesGlobal(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "warn", ServiceName: "test"}))
	assert.False(t, Get().Core().Enabled(zap.InfoLevel))
	assert.True(t, Get().Core().Enabled(zap.WarnLevel))

	child := Get().With(zap.String("component", "x"))
	assert.NotNil(t, child)
}

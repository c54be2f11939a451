package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fator/internal/config"
)

func TestDisabledLoggerIsNop(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Enabled = false
	l, err := New(cfg, true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
}

func TestFileLoggerWritesJSONLines(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "fator.log")
	cfg.Log.Level = "warn"

	l, err := New(cfg, false)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	b, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"shown"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestVerboseEnablesDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "fator.log")

	l, err := New(cfg, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))
}

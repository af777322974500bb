package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "labfetch.log")

	l := New(Config{Level: "debug", Format: "json", File: file, MaxSizeMB: 1, Service: "labfetch-api"})
	cl := Component(l, "hub")
	cl.Info().Msg("subscriber connected")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"hub"`)
	assert.Contains(t, string(data), `"service":"labfetch-api"`)
	assert.Contains(t, string(data), "subscriber connected")
}

func TestNewFallsBackToInfo(t *testing.T) {
	l := New(Config{Level: "chatty", Format: "json"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

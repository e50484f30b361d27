package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/warzone/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"INFO":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_JSONWithFile(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "warzone.log")
	var buf bytes.Buffer
	closer, err := Setup(config.LogConfig{Level: "warn", Format: "json", File: path}, &buf)
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Str("component", "test").Msg("kept")
	require.NoError(t, closer.Close())

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"message":"kept"`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestSetup_BadFile(t *testing.T) {
	prevLogger := log.Logger
	t.Cleanup(func() { log.Logger = prevLogger })

	_, err := Setup(config.LogConfig{Level: "info", Format: "console", File: filepath.Join(t.TempDir(), "no", "such", "dir.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}

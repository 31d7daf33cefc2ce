package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(&buf, Options{Level: "warn", Format: "json"})
	defer closer.Close()

	log.Info().Msg("hidden")
	log.Warn().Str("element", "circle").Msg("unsupported element skipped")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"element":"circle"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(&buf, Options{})
	defer closer.Close()

	log.Info().Str("file", "a.svg").Msg("loaded")
	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "file=a.svg")
	assert.NotContains(t, buf.String(), "{")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgbridge.log")
	var buf bytes.Buffer
	log, closer := New(&buf, Options{Format: "json", File: path})
	log.Info().Msg("to file")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
	assert.Contains(t, buf.String(), "to file")
}

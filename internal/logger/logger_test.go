package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	log.Warn().Str("doi", "x").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "doi=x")
}

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Config{Level: "DEBUG", NoColor: true})
	require.NoError(t, err)
	log.Debug().Msg("hop")
	assert.Contains(t, buf.String(), "hop")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Config{Level: "loud"})
	assert.Error(t, err)
}

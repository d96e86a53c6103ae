package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscardsWithoutPath(t *testing.T) {
	logger, closer, err := New("", "debug")
	require.NoError(t, err)
	assert.Nil(t, closer)

	// Must not panic writing to the discard sink
	logger.Info().Msg("hello")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, closer, err := New(path, "info")
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Info().Str("k", "v").Msg("logged line")
	logger.Debug().Msg("below level, dropped")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logged line")
	assert.NotContains(t, string(data), "below level")
}

func TestNewBadLevelFallsBack(t *testing.T) {
	logger, closer, err := New("", "not-a-level")
	require.NoError(t, err)
	assert.Nil(t, closer)
	logger.Info().Msg("still works")
}

package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealtask/pkg/logger"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)
	require.NotNil(t, templogger.Logger)
	// Get Stats Before
	require.Equal(t, buff.Len(), 0)
	templogger.Logger.Info().Msg("Test")
	// Get Stats After
	require.Contains(t, buff.String(), "Test")
}

func TestLogFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surrealtask.log")
	templogger, err := logger.New().FromPath(path).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger.LogFile)
	defer templogger.LogFile.Close()

	templogger.Logger.Info().Str("component", "test").Msg("started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "started")
	require.Contains(t, string(data), "component")
}

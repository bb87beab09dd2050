package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracking/internal/config"
)

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLogger(&config.Config{LogLevel: "debug", LogsDirectory: dir})
	require.NoError(t, err)

	log.Info("hello")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotswatch/robotswatch/internal/config"
)

func TestNew_DefaultConfig(t *testing.T) {
	logger, err := New(config.NewDefaultLogConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_Levels(t *testing.T) {
	for level, expected := range map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	} {
		cfg := config.NewDefaultLogConfig()
		cfg.LogLevel = level
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, expected, logger.GetLevel())
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "loud"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_FileWriter(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info().Str("component", "test").Msg("hello")

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8765, cfg.Server.Port)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, "ambient electronic music", cfg.Defaults.Prompt)
	assert.Equal(t, float64(10), cfg.Defaults.Duration)
	assert.Equal(t, 120, cfg.Defaults.Tempo)
	assert.Equal(t, "silence", cfg.Backend.Type)
	assert.Equal(t, 120, cfg.Backend.Timeout)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ACESTEP_SERVER_PORT", "9000")
	t.Setenv("ACESTEP_BACKEND_TYPE", "exec")
	t.Setenv("ACESTEP_AUDIO_SAMPLE_RATE", "22050")
	t.Setenv("ACESTEP_PIPELINE_COMMAND", "python3 pipeline.py")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "exec", cfg.Backend.Type)
	assert.Equal(t, 22050, cfg.Audio.SampleRate)
	assert.Equal(t, "python3 pipeline.py", cfg.Backend.Command)
}

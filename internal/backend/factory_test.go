package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicticker/acestep-server/config"
)

func testConfig(backendType string) *config.Config {
	return &config.Config{
		Audio:   config.AudioConfig{SampleRate: 44100, Channels: 1},
		Backend: config.BackendConfig{Type: backendType, Command: "cat"},
	}
}

func TestNewSilence(t *testing.T) {
	b, err := New(context.Background(), testConfig("silence"))
	require.NoError(t, err)
	assert.Equal(t, "silence", b.Name())
}

func TestNewExec(t *testing.T) {
	b, err := New(context.Background(), testConfig("exec"))
	require.NoError(t, err)
	assert.Equal(t, "exec", b.Name())
}

func TestNewUnknownTypeSuggests(t *testing.T) {
	_, err := New(context.Background(), testConfig("exce"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend type")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestNewExecRequiresCommand(t *testing.T) {
	cfg := testConfig("exec")
	cfg.Backend.Command = ""
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

package backend

import (
	"context"
	"fmt"

	"github.com/schollz/closestmatch"

	"github.com/musicticker/acestep-server/config"
)

type Type string

const (
	TypeSilence Type = "silence"
	TypeExec    Type = "exec"
	TypeSpeech  Type = "speech"
)

var knownTypes = []string{string(TypeSilence), string(TypeExec), string(TypeSpeech)}

// New creates a generation backend based on the configuration
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch Type(cfg.Backend.Type) {
	case TypeSilence:
		return NewSilenceBackend(), nil
	case TypeExec:
		return NewExecBackend(cfg.Backend.Command, cfg.Audio.SampleRate, cfg.Audio.Channels)
	case TypeSpeech:
		return NewSpeechBackend(ctx, cfg.Speech.Voice, cfg.Speech.CredentialsFile, cfg.Audio.SampleRate)
	default:
		cm := closestmatch.New(knownTypes, []int{2})
		if suggestion := cm.Closest(cfg.Backend.Type); suggestion != "" {
			return nil, fmt.Errorf("unsupported backend type: %s (did you mean %q?)", cfg.Backend.Type, suggestion)
		}
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend.Type)
	}
}

// Package generate applies the server's fallback policy: callers always get
// a framed WAV buffer back, and any backend trouble degrades to silence of
// the requested duration instead of surfacing as an error.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/musicticker/acestep-server/internal/audio"
	"github.com/musicticker/acestep-server/internal/backend"
	"github.com/musicticker/acestep-server/internal/logger"
)

type Service struct {
	backend    backend.Backend
	sampleRate int
	channels   int
	timeout    time.Duration
	logger     *logger.Log
}

func NewService(b backend.Backend, sampleRate, channels int, timeout time.Duration) *Service {
	return &Service{
		backend:    b,
		sampleRate: sampleRate,
		channels:   channels,
		timeout:    timeout,
		logger:     logger.New(),
	}
}

// Result reports what a generation produced alongside the WAV bytes, so the
// handler can log fallbacks without inspecting the audio.
type Result struct {
	Wav      []byte
	Fallback bool
}

// Generate synthesizes audio for the prompt. It never fails: a backend error
// or an empty sample set yields silence for the requested duration.
func (s *Service) Generate(ctx context.Context, params backend.Params) Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	samples, err := s.backend.Generate(ctx, params)
	if err != nil {
		s.logger.WithError(err).Error(fmt.Sprintf("generation failed for prompt %q, falling back to silence", params.Prompt))
		return Result{Wav: s.silence(params.Duration), Fallback: true}
	}
	if len(samples) == 0 {
		return Result{Wav: s.silence(params.Duration), Fallback: true}
	}

	pcm := audio.PCM16FromFloats(samples)
	return Result{Wav: audio.WrapPCM(pcm, s.sampleRate, s.channels)}
}

// BackendName identifies the configured backend for logs and health output.
func (s *Service) BackendName() string {
	return s.backend.Name()
}

func (s *Service) silence(duration float64) []byte {
	return audio.SilenceWAV(duration, s.sampleRate, s.channels)
}

package backend

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"google.golang.org/api/option"

	"github.com/musicticker/acestep-server/internal/logger"
)

// SpeechBackend narrates the prompt through Google Cloud Text-to-Speech.
// It exists for development setups without the ACE-Step pipeline: you still
// hear something prompt-shaped instead of silence.
type SpeechBackend struct {
	client     *texttospeech.Client
	voice      string
	sampleRate int
	logger     *logger.Log
}

func NewSpeechBackend(ctx context.Context, voice, credentialsFile string, sampleRate int) (*SpeechBackend, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &SpeechBackend{
		client:     client,
		voice:      voice,
		sampleRate: sampleRate,
		logger:     logger.New(),
	}, nil
}

// Extract language code from voice name (e.g., "en-US-Standard-C" -> "en-US")
func (s *SpeechBackend) extractLanguageCode(voiceName string) string {
	parts := strings.Split(voiceName, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	// Fallback to en-US if we can't parse
	return "en-US"
}

func (s *SpeechBackend) Generate(ctx context.Context, params Params) ([]float32, error) {
	if params.Prompt == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: params.Prompt},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: s.extractLanguageCode(s.voice),
			Name:         s.voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_LINEAR16,
			SpeakingRate:    speakingRateForTempo(params.Tempo),
			SampleRateHertz: int32(s.sampleRate),
		},
	}

	s.logger.Debug(fmt.Sprintf("narrating prompt with voice %s at %d Hz", s.voice, s.sampleRate))

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from speech client")
	}

	// LINEAR16 comes back as a framed WAV stream, not bare PCM.
	decoder := wav.NewDecoder(bytes.NewReader(resp.AudioContent))
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode speech audio: %w", err)
	}

	return floatsFromPCMBuffer(buf), nil
}

func floatsFromPCMBuffer(buf *audio.IntBuffer) []float32 {
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / 32768
	}
	return samples
}

func (s *SpeechBackend) Name() string {
	return "Google Cloud Text-to-Speech (preview)"
}

func (s *SpeechBackend) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// 120 BPM is the neutral speaking rate; faster tempos talk faster.
func speakingRateForTempo(tempo int) float64 {
	if tempo <= 0 {
		return 1.0
	}
	rate := float64(tempo) / 120.0
	if rate < 0.25 {
		return 0.25
	}
	if rate > 4.0 {
		return 4.0
	}
	return rate
}

package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"

	"github.com/musicticker/acestep-server/internal/logger"
)

// ExecBackend runs the ACE-Step pipeline as a child process per request.
// The request goes to the pipeline's stdin as a JSON document and the
// pipeline answers on stdout with a JSON document carrying base64-encoded
// little-endian float32 samples.
type ExecBackend struct {
	cmd        []string
	sampleRate int
	channels   int
	logger     *logger.Log
	mu         sync.Mutex
}

type execRequest struct {
	Prompt     string  `json:"prompt"`
	Duration   float64 `json:"duration"`
	Tempo      int     `json:"tempo"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
}

type execResponse struct {
	SamplesBase64 string `json:"samples_base64"`
	Error         string `json:"error,omitempty"`
}

func NewExecBackend(command string, sampleRate, channels int) (*ExecBackend, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse pipeline command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("pipeline command empty")
	}
	return &ExecBackend{
		cmd:        args,
		sampleRate: sampleRate,
		channels:   channels,
		logger:     logger.New(),
	}, nil
}

func (e *ExecBackend) Generate(ctx context.Context, params Params) ([]float32, error) {
	// One pipeline run at a time; the model does not share a GPU well.
	e.mu.Lock()
	defer e.mu.Unlock()

	payload, err := json.Marshal(execRequest{
		Prompt:     params.Prompt,
		Duration:   params.Duration,
		Tempo:      params.Tempo,
		SampleRate: e.sampleRate,
		Channels:   e.channels,
	})
	if err != nil {
		return nil, err
	}

	base := e.cmd[0]
	args := append([]string{}, e.cmd[1:]...)
	cmd := exec.CommandContext(ctx, base, args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug(fmt.Sprintf("running pipeline %q for prompt %q", base, params.Prompt))

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pipeline run failed: %w (stderr: %s)", err, stderr.String())
	}

	var resp execResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return nil, fmt.Errorf("decode pipeline response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("pipeline reported error: %s", resp.Error)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.SamplesBase64)
	if err != nil {
		return nil, fmt.Errorf("decode pipeline samples: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("pipeline sample payload not float32-aligned: %d bytes", len(raw))
	}

	samples := make([]float32, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}

func (e *ExecBackend) Name() string {
	return "exec"
}

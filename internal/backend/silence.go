package backend

import (
	"context"

	"github.com/musicticker/acestep-server/internal/logger"
)

type SilenceBackend struct {
}

func NewSilenceBackend() *SilenceBackend {
	return &SilenceBackend{}
}

func (s *SilenceBackend) Generate(_ context.Context, params Params) ([]float32, error) {
	logger.New().Debug("no generation backend configured. serving silence")
	return nil, nil
}

func (s *SilenceBackend) Name() string {
	return "silence"
}

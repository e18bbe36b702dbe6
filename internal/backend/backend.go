// Package backend provides the audio generation backends the server can be
// configured with. A backend turns a prompt into raw floating-point samples;
// framing those samples into a WAV stream is the caller's job.
package backend

import "context"

// Params carries one generation request to a backend.
type Params struct {
	Prompt   string
	Duration float64 // seconds
	Tempo    int     // beats per minute
}

// Backend is the contract for producing samples in [-1, 1]. A nil sample
// slice with a nil error means the backend has nothing to contribute and the
// caller should substitute silence.
type Backend interface {
	Generate(ctx context.Context, params Params) ([]float32, error)
	Name() string
}

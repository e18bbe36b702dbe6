package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/musicticker/acestep-server/config"
	"github.com/musicticker/acestep-server/internal/backend"
	"github.com/musicticker/acestep-server/internal/generate"
	"github.com/musicticker/acestep-server/internal/logger"
)

type AudioHandler struct {
	service  *generate.Service
	defaults config.DefaultsConfig
	logger   *logger.Log
}

// GenerateRequest is the /generate body. Fields are pointers so an explicit
// zero (e.g. "duration": 0) is distinguishable from an absent field.
type GenerateRequest struct {
	Prompt   *string  `json:"prompt"`
	Duration *float64 `json:"duration"`
	Tempo    *int     `json:"tempo"`
}

func NewAudioHandler(service *generate.Service, defaults config.DefaultsConfig) *AudioHandler {
	return &AudioHandler{
		service:  service,
		defaults: defaults,
		logger:   logger.New(),
	}
}

// GET /health
func (h *AudioHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// POST /generate - synthesize audio and stream it back as a WAV body
func (h *AudioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WithError(err).Warn("rejecting malformed generate body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := backend.Params{
		Prompt:   h.defaults.Prompt,
		Duration: h.defaults.Duration,
		Tempo:    h.defaults.Tempo,
	}
	if req.Prompt != nil {
		params.Prompt = *req.Prompt
	}
	if req.Duration != nil {
		params.Duration = *req.Duration
	}
	if req.Tempo != nil {
		params.Tempo = *req.Tempo
	}

	h.logger.Info(fmt.Sprintf("generating: %q (%gs, %d BPM)", params.Prompt, params.Duration, params.Tempo))

	result := h.service.Generate(r.Context(), params)
	if result.Fallback {
		h.logger.Warn(fmt.Sprintf("serving silence fallback for prompt %q", params.Prompt))
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Wav)))

	if _, err := w.Write(result.Wav); err != nil {
		h.logger.WithError(err).Error("failed to stream audio")
	}
}

// OPTIONS * - CORS preflight
func (h *AudioHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (h *AudioHandler) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// NewRouter wires the audio routes onto a fresh mux router.
func NewRouter(service *generate.Service, defaults config.DefaultsConfig) *mux.Router {
	h := NewAudioHandler(service, defaults)

	r := mux.NewRouter()
	r.Use(h.requestLogging)

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/generate", h.Generate).Methods("POST")
	r.PathPrefix("/").HandlerFunc(h.Preflight).Methods("OPTIONS")

	// 404s answer with an empty body, not the stdlib's text page
	r.NotFoundHandler = h.requestLogging(http.HandlerFunc(h.notFound))
	r.MethodNotAllowedHandler = h.requestLogging(http.HandlerFunc(h.notFound))

	return r
}

func (h *AudioHandler) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Request(r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

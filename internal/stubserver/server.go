// Package stubserver is a scripted double of the Wit API for tests and
// offline development. It serves the same /message, /converse and /speech
// shapes the real service does, checks bearer authentication, and replays
// converse scripts per session.
package stubserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/pkg/domain"
)

// MessageFunc computes the interpretation the stub returns for an utterance.
type MessageFunc func(q string) domain.MessageResponse

// Server is the scripted API double.
type Server struct {
	token   string
	logger  *slog.Logger
	message MessageFunc

	mu      sync.Mutex
	scripts map[string][]domain.ConverseResponse
}

// Option configures the stub.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMessageFunc replaces the default echo interpretation.
func WithMessageFunc(fn MessageFunc) Option {
	return func(s *Server) { s.message = fn }
}

// NewServer creates a stub accepting the given bearer token.
func NewServer(token string, opts ...Option) *Server {
	s := &Server{
		token:   token,
		logger:  logging.NewNop(),
		scripts: make(map[string][]domain.ConverseResponse),
	}
	s.message = s.echoMessage
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScriptConverse queues the converse responses replayed, in order, for the
// session. When a session's script is exhausted the stub answers stop.
func (s *Server) ScriptConverse(sessionID string, steps ...domain.ConverseResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[sessionID] = append(s.scripts[sessionID], steps...)
}

// Handler returns the chi router serving the stubbed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.auth)

	r.Get("/message", s.handleMessage)
	r.Post("/converse", s.handleConverse)
	r.Post("/speech", s.handleSpeech)
	return r
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			s.logger.Warn("rejected request with bad token", "path", r.URL.Path)
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "invalid or missing access token",
				"code":  "no-auth",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.logger.Debug("stub message", "q", q)
	writeJSON(w, http.StatusOK, s.message(q))
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	// Drain the audio stream; the stub interprets its size, not its sound.
	n, err := io.Copy(io.Discard, r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable audio payload"})
		return
	}
	s.logger.Debug("stub speech", "bytes", n)
	writeJSON(w, http.StatusOK, s.message("<audio>"))
}

func (s *Server) handleConverse(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required"})
		return
	}

	// The body must be a JSON context, even if empty.
	var cv domain.Context
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "context body is not valid JSON"})
		return
	}

	s.mu.Lock()
	script := s.scripts[sessionID]
	var step domain.ConverseResponse
	if len(script) > 0 {
		step = script[0]
		s.scripts[sessionID] = script[1:]
	} else {
		step = s.defaultStep(r.URL.Query().Get("q"))
	}
	s.mu.Unlock()

	s.logger.Debug("stub converse", "session_id", sessionID, "type", step.Type)
	writeJSON(w, http.StatusOK, step)
}

// defaultStep keeps unscripted sessions usable: an utterance gets echoed
// back as a message, a follow-up call concludes.
func (s *Server) defaultStep(q string) domain.ConverseResponse {
	if q != "" {
		return domain.ConverseResponse{
			Type:       domain.ConverseTypeMessage,
			Msg:        "You said: " + q,
			Confidence: 1,
		}
	}
	return domain.ConverseResponse{Type: domain.ConverseTypeStop, Confidence: 1}
}

func (s *Server) echoMessage(q string) domain.MessageResponse {
	return domain.MessageResponse{
		Text: q,
		Intents: []domain.Intent{
			{ID: "1", Name: "echo", Confidence: 1},
		},
		Entities: domain.Entities{},
		Traits:   map[string][]domain.Trait{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

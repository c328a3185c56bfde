package langbridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ourstudio-se/langbridge/translate"
)

const maxRequestBodyBytes = 1 << 20

// Server exposes a Bot over HTTP. One POST carries one inbound activity; the
// response carries every reply the turn produced, already adapted to the
// user's language.
type Server struct {
	router *chi.Mux
	bot    *Bot
}

// NewServer creates the HTTP server for a bot.
func NewServer(bot *Bot) *Server {
	s := &Server{
		router: chi.NewRouter(),
		bot:    bot,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	cfg := s.bot.config

	s.router.Use(requestIDMiddleware)
	s.router.Use(loggingMiddleware(s.bot.logger))
	s.router.Use(recoveryMiddleware(s.bot.logger))
	s.router.Use(timeoutMiddleware(cfg.RequestTimeout))
	s.router.Use(bodySizeLimitMiddleware(maxRequestBodyBytes))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}))
}

func (s *Server) setupRoutes() {
	s.router.Post("/api/messages", s.handleMessages)
	s.router.Get("/api/languages", s.handleLanguages)
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MessagesResponse is the HTTP response body for a processed turn.
type MessagesResponse struct {
	Activities []Activity `json:"activities"`
}

// ErrorResponse is the HTTP error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// bufferTransport collects delivered batches for the HTTP response.
type bufferTransport struct {
	activities []Activity
}

func (t *bufferTransport) Send(ctx context.Context, activities []Activity) error {
	t.activities = append(t.activities, activities...)
	return nil
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	var activity Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", ErrCodeValidation)
		return
	}

	if activity.Type == "" {
		activity.Type = ActivityTypeMessage
	}
	if activity.ScopeKey() == "" {
		s.writeError(w, http.StatusBadRequest, "conversationId or userId is required", ErrCodeValidation)
		return
	}

	transport := &bufferTransport{}
	if err := s.bot.ProcessActivity(r.Context(), transport, activity); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessagesResponse{Activities: transport.activities})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"default":   s.bot.langs.Default().Code,
		"languages": s.bot.langs.All(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleError maps turn failures to HTTP responses. Provider failures stay a
// generic apology; the details go to the log, not the user.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var perr *translate.ProviderError
	if errors.As(err, &perr) {
		s.bot.logger.Error("translation provider failure", "error", err.Error())
		s.writeError(w, http.StatusBadGateway, "Sorry, something went wrong. Please try again.", "provider")
		return
	}

	var berr *Error
	if errors.As(err, &berr) {
		status := http.StatusInternalServerError
		if berr.Code == ErrCodeValidation {
			status = http.StatusBadRequest
		}
		s.bot.logger.Error("turn failed", "code", berr.Code, "error", err.Error())
		s.writeError(w, status, berr.Message, berr.Code)
		return
	}

	s.bot.logger.Error("turn failed", "error", err.Error())
	s.writeError(w, http.StatusInternalServerError, "internal error", ErrCodeInternal)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.bot.logger.Error("failed to encode response", "error", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, code string) {
	s.writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

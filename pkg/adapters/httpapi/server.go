// Package httpapi exposes the support pipeline over HTTP: chat endpoints,
// transcript access, service metadata, and optionally Prometheus metrics.
package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine is the pipeline surface the server dispatches to.
type Engine interface {
	Process(ctx context.Context, query, sessionID string) (*domain.Record, error)
}

// Server handles the chat and transcript routes.
type Server struct {
	engine   Engine
	store    ports.TranscriptStore
	registry *prometheus.Registry
	logger   *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithStore enables the transcript endpoints; without it they return 404.
func WithStore(store ports.TranscriptStore) ServerOption {
	return func(s *Server) { s.store = store }
}

// WithMetricsRegistry mounts /metrics over the given registry.
func WithMetricsRegistry(registry *prometheus.Registry) ServerOption {
	return func(s *Server) { s.registry = registry }
}

// WithServerLogger sets a structured logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewHandler builds the routed handler for the engine.
func NewHandler(engine Engine, opts ...ServerOption) http.Handler {
	server := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Post("/api/chat", server.Chat)
	r.Post("/api/chat/simple", server.ChatSimple)
	r.Get("/api/categories", server.Categories)
	if server.store != nil {
		r.Get("/api/sessions", server.Sessions)
		r.Get("/api/sessions/{sessionId}", server.SessionHistory)
		r.Delete("/api/sessions/{sessionId}", server.SessionDelete)
	}
	r.Get("/health", server.Health)
	r.Get("/info", server.Info)
	if server.registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{}))
	}

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ChatRequest is the body of the chat endpoints.
type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	record, ok := s.process(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.logger, record)
}

// ChatSimple handles POST /api/chat/simple: the record reduced to the
// response text.
func (s *Server) ChatSimple(w http.ResponseWriter, r *http.Request) {
	record, ok := s.process(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.logger, map[string]string{"response": record.Response})
}

// process decodes the chat body, fills in a session id if absent, and runs
// the pipeline. It writes the error response itself and reports success.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (*domain.Record, bool) {
	var body ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("chat: invalid request body", "err", err)
		return nil, false
	}
	if body.SessionID == "" {
		body.SessionID = uuid.NewString()
	}

	record, err := s.engine.Process(r.Context(), body.Query, body.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			http.Error(w, "Query must not be empty", http.StatusBadRequest)
			return nil, false
		}
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		s.logger.Error("chat: processing failed", "err", err)
		return nil, false
	}
	return record, true
}

// Categories handles GET /api/categories.
func (s *Server) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, map[string][]domain.CategoryInfo{
		"categories": domain.Catalog(),
	})
}

// Sessions handles GET /api/sessions.
func (s *Server) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.Sessions(r.Context())
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		s.logger.Error("sessions: list failed", "err", err)
		return
	}
	if sessions == nil {
		sessions = []string{}
	}
	writeJSON(w, s.logger, map[string][]string{"sessions": sessions})
}

// SessionHistory handles GET /api/sessions/{sessionId}.
func (s *Server) SessionHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	records, err := s.store.History(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Unknown session", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load transcript", http.StatusInternalServerError)
		s.logger.Error("sessions: history failed", "err", err, "session_id", sessionID)
		return
	}
	writeJSON(w, s.logger, records)
}

// SessionDelete handles DELETE /api/sessions/{sessionId}.
func (s *Server) SessionDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if err := s.store.Delete(r.Context(), sessionID); err != nil {
		http.Error(w, "Failed to delete transcript", http.StatusInternalServerError)
		s.logger.Error("sessions: delete failed", "err", err, "session_id", sessionID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, _ *http.Request) {
	apiVersion := "unknown"
	if doc, err := openapi3.NewLoader().LoadFromData(openapiSpec); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, s.logger, map[string]string{
		"app":         "canopy-http",
		"version":     canopy.Version,
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Canopy API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

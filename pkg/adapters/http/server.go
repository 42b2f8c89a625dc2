package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the part of fretwise.Engine served over HTTP.
type Engine interface {
	Recommend(ctx context.Context, names []string) (*fretwise.Recommendation, error)
	Rank(ctx context.Context, names []string) (*domain.RankedTransitionSet, error)
	Roots(ctx context.Context) ([]string, error)
	Variations(ctx context.Context, root string) ([]domain.ChordVariation, error)
	Score(from, to domain.ChordVariation) (domain.Score, error)
}

// Server implements ServerInterface on top of an Engine.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics records request metrics and serves them at /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.observe)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics.Handler())
	}

	handler := HandlerFromMux(server, r)
	return enableCORS(handler)
}

// observe logs and measures each request under its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.Metrics != nil && route != "/metrics" {
			s.Metrics.ObserveRequest(route, status, time.Since(start))
		}
		s.Logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Fretwise API Documentation</title>
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

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "fretwise-http",
		"version":     strings.TrimSpace(fretwise.Version),
		"api_version": apiVersion,
	})
}

// ListChords handles the GET /chords request.
func (s *Server) ListChords(w http.ResponseWriter, r *http.Request) {
	roots, err := s.Engine.Roots(r.Context())
	if err != nil {
		s.fail(w, "ListChords", err)
		return
	}
	if roots == nil {
		roots = []string{}
	}
	writeJSON(w, http.StatusOK, roots)
}

// GetChord handles the GET /chords/{root} request.
func (s *Server) GetChord(w http.ResponseWriter, r *http.Request, root string) {
	vs, err := s.Engine.Variations(r.Context(), root)
	if err != nil {
		s.fail(w, "GetChord", err)
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

// RankTransitions handles the GET /transitions request.
func (s *Server) RankTransitions(w http.ResponseWriter, r *http.Request, params ChordsParams) {
	set, err := s.Engine.Rank(r.Context(), params.Chords)
	if err != nil {
		s.fail(w, "RankTransitions", err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Recommend handles the GET /recommend request.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request, params ChordsParams) {
	rec, err := s.Engine.Recommend(r.Context(), params.Chords)
	if err != nil {
		s.fail(w, "Recommend", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// MaxRequestBodyBytes bounds request bodies. Two chord variations fit in far less.
const MaxRequestBodyBytes = 64 << 10

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	From *domain.ChordVariation `json:"from"`
	To   *domain.ChordVariation `json:"to"`
}

// ScoreTransition handles the POST /score request.
func (s *Server) ScoreTransition(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	var body ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.From == nil || body.To == nil {
		writeError(w, http.StatusBadRequest, errors.New("both from and to are required"))
		return
	}

	score, err := s.Engine.Score(*body.From, *body.To)
	if err != nil {
		s.fail(w, "ScoreTransition", err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" rejected", "err", err, "status", status)
	}
	writeError(w, status, err)
}

// StatusOf returns the HTTP status of an engine error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrChordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidVariation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fretwise.ErrNoCatalog):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

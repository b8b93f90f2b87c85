// Package httpapi exposes the scoring engine over HTTP. The surface is
// deliberately thin: requests are decoded, handed to the engine, and the
// result serialized straight back; no session or task state lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/papapumpkin/triage/internal/history"
	"github.com/papapumpkin/triage/internal/scoring"
	"github.com/papapumpkin/triage/internal/task"
	"github.com/papapumpkin/triage/internal/telemetry"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// ServerConfig holds optional collaborators for the Server. Both are
// nil-safe no-ops when unset.
type ServerConfig struct {
	// History records an audit row per request when non-nil.
	History *history.Store
	// Telemetry emits a JSONL event per request when non-nil.
	Telemetry *telemetry.Emitter
}

// Server serves the analyze and suggest endpoints over HTTP.
type Server struct {
	port      int
	srv       *http.Server
	ln        net.Listener
	history   *history.Store
	telemetry *telemetry.Emitter
}

// NewServer creates a Server listening on the given port. Pass nil for
// cfg to run without history or telemetry.
func NewServer(port int, cfg *ServerConfig) *Server {
	s := &Server{port: port}
	if cfg != nil {
		s.history = cfg.History
		s.telemetry = cfg.Telemetry
	}
	return s
}

// Handler returns the route table, exposed separately so tests can drive
// it through httptest without opening a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tasks/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/tasks/suggest", s.handleSuggestUsage)
	mux.HandleFunc("POST /api/tasks/suggest", s.handleSuggest)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

// Start binds the listener and begins serving. It blocks only until the
// server is ready to accept connections. Port 0 picks a free port; use
// Addr to discover it.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("httpapi: listen on port %d: %w", s.port, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "httpapi: serve error: %v\n", err)
		}
	}()
	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// analyzeRequest is the body of POST /api/tasks/analyze.
type analyzeRequest struct {
	Tasks    json.RawMessage `json:"tasks"`
	Strategy string          `json:"strategy"`
}

// suggestRequest is the body of POST /api/tasks/suggest.
type suggestRequest struct {
	Tasks    json.RawMessage `json:"tasks"`
	Count    *int            `json:"count"`
	Strategy string          `json:"strategy"`
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "Invalid request data", err.Error())
		return
	}
	tasks, ok := s.decodeBatch(w, req.Tasks)
	if !ok {
		return
	}

	engine := scoring.New(req.Strategy)
	result, err := engine.Analyze(tasks)
	if errors.Is(err, scoring.ErrNoTasks) {
		s.badRequest(w, "No tasks provided", "Please provide at least one task to analyze")
		return
	}
	if err != nil {
		s.fail(w, "Analysis failed", err)
		return
	}

	if _, err := s.history.RecordAnalysis(r.Context(), result); err != nil {
		fmt.Fprintf(os.Stderr, "httpapi: %v\n", err)
	}
	_ = s.telemetry.Emit(telemetry.Event{
		Timestamp:  time.Now(),
		Kind:       telemetry.KindAnalyze,
		Strategy:   string(result.StrategyUsed),
		TaskCount:  result.TotalTasks,
		CycleCount: len(result.CircularDependencies),
		DurationMs: time.Since(start).Milliseconds(),
	})
	s.respond(w, http.StatusOK, result)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "Invalid request data", err.Error())
		return
	}
	tasks, ok := s.decodeBatch(w, req.Tasks)
	if !ok {
		return
	}

	count := scoring.DefaultSuggestCount
	if req.Count != nil {
		count = *req.Count
	}

	engine := scoring.New(req.Strategy)
	result, err := engine.Suggest(tasks, count)
	switch {
	case errors.Is(err, scoring.ErrBadCount):
		s.badRequest(w, "Invalid count", "count must be a positive integer")
		return
	case errors.Is(err, scoring.ErrNoTasks):
		s.badRequest(w, "No tasks provided", "Please provide tasks in the request body")
		return
	case err != nil:
		s.fail(w, "Suggestion generation failed", err)
		return
	}

	if _, err := s.history.RecordSuggestion(r.Context(), result); err != nil {
		fmt.Fprintf(os.Stderr, "httpapi: %v\n", err)
	}
	_ = s.telemetry.Emit(telemetry.Event{
		Timestamp:  time.Now(),
		Kind:       telemetry.KindSuggest,
		Strategy:   string(result.StrategyUsed),
		TaskCount:  result.TotalTasksAnalyzed,
		DurationMs: time.Since(start).Milliseconds(),
	})
	s.respond(w, http.StatusOK, result)
}

// handleSuggestUsage answers GET /api/tasks/suggest with a worked example,
// since suggestions need a task batch in the body.
func (s *Server) handleSuggestUsage(w http.ResponseWriter, _ *http.Request) {
	hours := 2.0
	importance := 7
	s.respond(w, http.StatusOK, map[string]any{
		"message": "Please use POST with tasks in the request body",
		"example": map[string]any{
			"tasks": []task.Task{{
				ID:             1,
				Title:          "Example task",
				DueDate:        "2025-11-30",
				EstimatedHours: &hours,
				Importance:     &importance,
			}},
			"count":    scoring.DefaultSuggestCount,
			"strategy": string(scoring.DefaultStrategy),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "triage API",
		"version": Version,
	})
}

// decodeBatch unpacks the raw tasks field, distinguishing a missing or
// non-list payload from a merely empty one. On failure it writes the 400
// itself and returns ok=false.
func (s *Server) decodeBatch(w http.ResponseWriter, raw json.RawMessage) ([]task.Task, bool) {
	if len(raw) == 0 {
		s.badRequest(w, "No tasks provided", "Request body must include a tasks list")
		return nil, false
	}
	var batch task.List
	if err := json.Unmarshal(raw, &batch); err != nil {
		s.badRequest(w, "Invalid request data", err.Error())
		return nil, false
	}
	return batch, true
}

func (s *Server) badRequest(w http.ResponseWriter, errMsg, detail string) {
	_ = s.telemetry.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindError,
		Detail:    errMsg,
	})
	s.respond(w, http.StatusBadRequest, errorResponse{Error: errMsg, Message: detail})
}

func (s *Server) fail(w http.ResponseWriter, errMsg string, err error) {
	s.respond(w, http.StatusInternalServerError, errorResponse{Error: errMsg, Message: err.Error()})
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Fprintf(os.Stderr, "httpapi: encode response: %v\n", err)
	}
}

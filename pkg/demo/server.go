// Package demo is a local stand-in for the Agro Auto-Resolve backend. It
// serves the session lifecycle endpoints against an in-memory store and the
// dashboard endpoints from canned data, so the TUI can be exercised without
// the real orchestrator.
package demo

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"agrodesk/pkg/api"
)

// Server implements the helpdesk REST contract with canned behavior.
type Server struct {
	store *store
}

// NewServer creates a demo backend.
func NewServer() *Server {
	return &Server{store: newStore()}
}

// Handler returns the HTTP handler for the demo backend.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Route("/session", func(sr chi.Router) {
		sr.Post("/start", s.handleStartSession)
		sr.Post("/message", s.handleSendMessage)
		sr.Get("/history/{sessionID}", s.handleHistory)
		sr.Post("/close/{sessionID}", s.handleCloseSession)
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/tickets", func(w http.ResponseWriter, r *http.Request) { respondJSON(w, http.StatusOK, demoTickets) })
		ar.Get("/agents", func(w http.ResponseWriter, r *http.Request) { respondJSON(w, http.StatusOK, demoAgents) })
		ar.Get("/runbooks", func(w http.ResponseWriter, r *http.Request) { respondJSON(w, http.StatusOK, demoRunbooks) })
		ar.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { respondJSON(w, http.StatusOK, demoMetrics) })
		ar.Get("/plots", func(w http.ResponseWriter, r *http.Request) { respondJSON(w, http.StatusOK, demoPlots) })
	})

	return r
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.create()
	slog.Info("demo_session_created", "session_id", sess.id)
	respondJSON(w, http.StatusCreated, api.StartSessionResponse{SessionID: sess.id})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req api.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if !s.store.isActive(req.SessionID) {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	reply := cannedReply(req.Message)
	if err := s.store.appendTurn(req.SessionID, req.Message, reply.Reply); err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := s.store.history(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if messages == nil {
		messages = []api.HistoryMessage{}
	}
	respondJSON(w, http.StatusOK, api.HistoryResponse{Messages: messages})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ack, err := s.store.close(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, ack)
}

// cannedReply mimics the original backend's keyword intent recognition.
func cannedReply(message string) api.SendReply {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "fungus"):
		return api.SendReply{
			OK:        true,
			Reply:     "I've analyzed the image and it looks like a fungal infection. I'm notifying the agronomist.",
			FlowState: "diagnosing",
			ExecutionSummary: map[string]any{
				"agents_executed": 2,
				"success":         true,
			},
		}
	case strings.Contains(lower, "vibration"), strings.Contains(lower, "vibrating"):
		return api.SendReply{
			OK:          true,
			Reply:       "Vibration detected. I'm checking the telemetry data for the harvester.",
			FlowState:   "collecting_info",
			WorkOrderID: "WO-1042",
			ExecutionSummary: map[string]any{
				"agents_executed": 3,
				"success":         true,
			},
		}
	case strings.Contains(lower, "stock"), strings.Contains(lower, "urea"):
		return api.SendReply{
			OK:        true,
			Reply:     "Checking warehouse balance and consumption forecast for automatic replenishment.",
			FlowState: "executing_runbook",
			ExecutionSummary: map[string]any{
				"agents_executed": 2,
				"success":         true,
			},
		}
	default:
		return api.SendReply{
			OK:                 true,
			Reply:              "I received your message: '" + message + "'. Could you describe the crop or machine involved?",
			FlowState:          "triage",
			NeedsClarification: true,
		}
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("demo_request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("demo_encode_failed", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

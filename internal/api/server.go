// Package api provides the HTTP API over the cognition engine.
// GET endpoints are public (read-only observation).
// POST endpoints that change agents require a bearer token (admin control plane).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talgya/lifesim/internal/actions"
	"github.com/talgya/lifesim/internal/agents"
	"github.com/talgya/lifesim/internal/cognition"
	"github.com/talgya/lifesim/internal/engine"
)

// Server serves the engine over HTTP.
type Server struct {
	Engine *engine.Engine
	Locks  *engine.AgentLocks

	// Optional: Ticker is reported by /status, Gatherer serves /metrics.
	Ticker   *engine.Ticker
	Gatherer prometheus.Gatherer

	Port        int
	AdminKey    string   // Bearer token for POST endpoints. Empty = POST disabled.
	CORSOrigins []string // allowed in addition to localhost dev servers
	RateLimit   int      // decide and autonomous requests per IP per minute
	TrustProxy  bool     // key rate limits on X-Forwarded-For

	http *http.Server
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	if s.Locks == nil {
		s.Locks = &engine.AgentLocks{}
	}
	decideLimiter := NewRateLimiter(s.RateLimit)
	decideLimiter.TrustProxy = s.TrustProxy
	autonomousLimiter := NewRateLimiter(s.RateLimit)
	autonomousLimiter.TrustProxy = s.TrustProxy

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/actions", s.handleCatalog)
	mux.HandleFunc("GET /api/v1/agents", s.handleAgents)
	mux.HandleFunc("GET /api/v1/agents/{id}", s.handleAgent)
	mux.HandleFunc("GET /api/v1/agents/{id}/state", s.handleState)
	mux.HandleFunc("GET /api/v1/agents/{id}/actions", s.handleAgentActions)
	mux.HandleFunc("POST /api/v1/agents/{id}/autonomous", RateLimitMiddleware(autonomousLimiter, s.handleAutonomous))
	mux.HandleFunc("GET /api/v1/agents/{id}/memories", s.handleMemories)
	mux.HandleFunc("GET /api/v1/agents/{id}/history", s.handleHistory)

	// Admin endpoints.
	mux.HandleFunc("POST /api/v1/agents", s.adminOnly(s.handleCreateAgent))
	mux.HandleFunc("POST /api/v1/agents/{id}/actions/{action}", s.adminOnly(s.handleExecute))
	mux.HandleFunc("POST /api/v1/agents/{id}/time", s.adminOnly(s.handleTime))
	mux.HandleFunc("POST /api/v1/agents/{id}/decide", s.adminOnly(RateLimitMiddleware(decideLimiter, s.handleDecide)))
	mux.HandleFunc("POST /api/v1/agents/{id}/outcome", s.adminOnly(s.handleOutcome))
	mux.HandleFunc("POST /api/v1/relationships", s.adminOnly(s.handleRelationship))

	if s.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return corsMiddleware(mux, s.CORSOrigins)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops accepting requests and waits up to timeout for in-flight ones.
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler, extra []string) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range extra {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no LIFESIM_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":    "lifesim",
		"actions": len(s.Engine.ListActionCatalog()),
	}
	if ids, err := s.Engine.AgentIDs(r.Context()); err == nil {
		status["agents"] = len(ids)
	} else {
		status["store_error"] = err.Error()
	}
	if s.Ticker != nil {
		status["ticks"] = s.Ticker.Ticks()
		status["tick_minutes"] = s.Ticker.Minutes
		status["autonomy"] = s.Ticker.Autonomy
	}
	writeJSON(w, status)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.ListActionCatalog())
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.AgentIDs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"agent_ids": ids})
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	a, err := s.Engine.GetAgent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, a)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	state, err := s.Engine.GetSimulationState(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, state)
}

func (s *Server) handleAgentActions(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	state, err := s.Engine.GetSimulationState(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"available":   s.Engine.AvailableActions(state),
		"recommended": s.Engine.RecommendedActions(state),
	})
}

func (s *Server) handleAutonomous(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	def, found, err := s.Engine.GenerateAutonomousAction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	var action *actions.Definition
	if found {
		action = &def
	}
	writeJSON(w, map[string]any{"action": action})
}

func (s *Server) handleMemories(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	mems, err := s.Engine.Memories(r.Context(), id, queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, mems)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	hist, err := s.Engine.History(r.Context(), id, queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, hist)
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	a, profile, err := s.Engine.CreateAgent(r.Context(), req.Name, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("agent created", "agent_id", a.ID, "name", a.Name, "type", a.Type)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"agent": a, "personality": profile})
}

type actionResult struct {
	Success  bool                    `json:"success"`
	NewState *agents.SimulationState `json:"new_state,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	unlock := s.Locks.Lock(id)
	state, err := s.Engine.ExecuteAction(r.Context(), id, r.PathValue("action"))
	unlock()

	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		writeJSON(w, actionResult{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, actionResult{Success: true, NewState: &state})
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	var req struct {
		Minutes int `json:"minutes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	unlock := s.Locks.Lock(id)
	state, err := s.Engine.SimulateTimePassage(r.Context(), id, req.Minutes)
	unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, state)
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	var dctx cognition.Context
	if !decodeJSON(w, r, &dctx) {
		return
	}
	unlock := s.Locks.Lock(id)
	decision, err := s.Engine.Decide(r.Context(), id, dctx)
	unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, decision)
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	id, ok := agentID(w, r)
	if !ok {
		return
	}
	var req struct {
		Outcome      string `json:"outcome"`
		DecisionType string `json:"decision_type"`
		Reasoning    string `json:"reasoning"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	unlock := s.Locks.Lock(id)
	err := s.Engine.ProcessOutcome(r.Context(), id, req.Outcome, req.DecisionType, req.Reasoning)
	unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "recorded"})
}

func (s *Server) handleRelationship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agent1     agents.AgentID `json:"agent1_id"`
		Agent2     agents.AgentID `json:"agent2_id"`
		Positivity int            `json:"positivity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rel, err := s.Engine.SetRelationship(r.Context(), req.Agent1, req.Agent2, req.Positivity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rel)
}

func agentID(w http.ResponseWriter, r *http.Request) (agents.AgentID, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "invalid agent id", http.StatusBadRequest)
		return 0, false
	}
	return agents.AgentID(id), true
}

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return n
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrAgentNotFound), errors.Is(err, engine.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrRequirementsNotMet):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrDataStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cumbiambero/genforge/internal/events"
	"github.com/cumbiambero/genforge/internal/fitness"
	"github.com/cumbiambero/genforge/internal/solver"
)

// Handlers serves genforge's HTTP control plane.
type Handlers struct {
	store *store
	log   zerolog.Logger
}

// NewHandlers builds a Handlers backed by a fresh in-memory run store.
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		store: newStore(log),
		log:   log.With().Str("component", "api_handlers").Logger(),
	}
}

// StartGC launches the store's background reaper; call once at process
// startup alongside the HTTP server.
func (h *Handlers) StartGC(stop <-chan struct{}) {
	go h.store.runGC(time.Minute, stop)
}

// SolveRequest is the POST /solve body: row data plus the solver knobs
// also exposed as CLI flags.
type SolveRequest struct {
	Variables   []string    `json:"variables"`
	Inputs      [][]float64 `json:"inputs"`
	Expected    [][]float64 `json:"expected"`
	FitnessMode string      `json:"fitness_mode"` // "basic" | "enhanced" | "ultra"
	Target      float64     `json:"target"`
	TimeSeconds int         `json:"time_seconds"`
	Threads     int         `json:"threads"`
}

// HandleSolve starts a new run and returns its RunID immediately; the run
// continues asynchronously. POST /solve
func (h *Handlers) HandleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Variables) == 0 || len(req.Inputs) == 0 || len(req.Expected) == 0 {
		h.respondError(w, http.StatusBadRequest, "variables, inputs, and expected are required")
		return
	}

	cfg := solver.DefaultConfig()
	cfg.Evaluator = resolveEvaluator(req.FitnessMode)
	if req.Target > 0 {
		cfg.Target = req.Target
	}
	if req.TimeSeconds > 0 {
		cfg.TimeBudget = time.Duration(req.TimeSeconds) * time.Second
	}
	if req.Threads > 0 {
		cfg.Threads = req.Threads
	}

	bus := events.NewBus(h.log)
	s := solver.New(cfg, req.Variables, req.Inputs, req.Expected, bus, h.log)
	h.store.put(&run{solver: s, bus: bus, createdAt: time.Now()})
	s.Start()

	h.respondJSON(w, http.StatusAccepted, map[string]any{
		"run_id": s.RunID(),
	})
}

func resolveEvaluator(mode string) fitness.Evaluator {
	switch mode {
	case "basic":
		return fitness.Basic{}
	case "ultra":
		return fitness.Ultra{}
	default:
		return fitness.Enhanced{}
	}
}

// HandleStatus reports the current state, best fitness, and hall-of-fame
// size for a run. GET /solve/{runID}
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	rn, ok := h.store.get(runID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown run")
		return
	}

	hof := rn.solver.HallOfFame()
	body := map[string]any{
		"run_id":         rn.solver.RunID(),
		"state":          rn.solver.State().String(),
		"done_reason":    rn.solver.DoneReason(),
		"hall_of_fame_n": len(hof),
		"pool_size":      len(rn.solver.Pool()),
	}
	if best, ok := bestOf(rn.solver); ok {
		body["best_fitness"] = best.Fitness
		body["best_formula"] = best.Formula.String()
	}

	h.respondJSON(w, http.StatusOK, body)
}

func bestOf(s *solver.Solver) (solver.Solution, bool) {
	pool := s.Pool()
	if len(pool) == 0 {
		return solver.Solution{}, false
	}
	return pool[len(pool)-1], true
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
	})
}

// RegisterRoutes registers every control-plane route under /solve.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/solve", func(r chi.Router) {
		r.Post("/", h.HandleSolve)
		r.Get("/{runID}", h.HandleStatus)
		r.Get("/{runID}/stream", h.HandleStream)
	})
}

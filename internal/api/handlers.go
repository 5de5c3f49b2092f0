package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/stride/internal/planner"
	"github.com/hyperengineering/stride/internal/types"
	"github.com/hyperengineering/stride/internal/validation"
)

// Planner is the slice of the planning subsystem the API depends on.
type Planner interface {
	Plan(ctx context.Context, userID string, goal types.GoalInput) (*types.InsertResult, error)
}

// TaskCounter supplies the task count for the health check.
type TaskCounter interface {
	CountTasks(ctx context.Context) (int64, error)
}

// Handler implements the API handlers.
type Handler struct {
	planner Planner
	counter TaskCounter
	apiKey  string
	version string
	model   string
}

// NewHandler creates a Handler. model names the rewrite model in the
// health payload and may be empty when personalization is disabled.
func NewHandler(p Planner, c TaskCounter, apiKey, version, model string) *Handler {
	return &Handler{
		planner: p,
		counter: c,
		apiKey:  apiKey,
		version: version,
		model:   model,
	}
}

// Health returns the health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.counter.CountTasks(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "task store unavailable")
		return
	}

	resp := types.HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		RewriterModel: h.model,
		TaskCount:     count,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// CreatePlan handles POST /api/v1/plans: it seeds the full task plan for
// one goal. A failure after partial insertion is reported as fatal; the
// caller owns compensating cleanup (typically deleting the goal).
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req types.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidatePlanRequest(req); len(errs) > 0 {
		WriteValidationProblem(w, r, "Request contains invalid fields", errs)
		return
	}

	result, err := h.planner.Plan(r.Context(), req.UserID, req.Goal)
	if err != nil {
		h.writePlanError(w, r, req.Goal.ID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// writePlanError maps planner failures onto problem responses. A missing
// date column means the deployment's schema is unusable (503); a chunk
// failure reports how far insertion got so clients can decide on cleanup.
func (h *Handler) writePlanError(w http.ResponseWriter, r *http.Request, goalID string, err error) {
	slog.Error("plan failed", "goal_id", goalID, "error", err)

	var chunkErr *planner.ChunkError
	switch {
	case errors.Is(err, planner.ErrNoDateColumn):
		WriteProblem(w, r, http.StatusServiceUnavailable, "task store schema has no usable date column")
	case errors.As(err, &chunkErr):
		WriteProblem(w, r, http.StatusInternalServerError,
			fmt.Sprintf("plan partially written: %d streak chunks committed before failure", chunkErr.Committed))
	default:
		WriteProblem(w, r, http.StatusInternalServerError, "plan insertion failed")
	}
}

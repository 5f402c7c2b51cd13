package api

import (
	"errors"
	"net/http"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/model"
	"github.com/okian/habitat/pkg/logger"
)

// EvaluateHandler handles evaluation requests.
type EvaluateHandler struct {
	deps         Evaluator
	maxBodyBytes int64
	logger       logger.Logger
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Evaluator, maxBodyBytes int64, l logger.Logger) *EvaluateHandler {
	return &EvaluateHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// evaluateResponse is the body returned by POST /evaluate. Record echoes the
// input with defaults applied.
type evaluateResponse struct {
	Score         float64                `json:"score"`
	FlareOverride bool                   `json:"flare_override"`
	Penalties     []habitability.Penalty `json:"penalties"`
	Record        model.PlanetRecord     `json:"record"`
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	reqID := logger.String("requestId", RequestIDFromContext(r.Context()))

	p, err := model.DecodeJSON(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
		case errors.Is(err, model.ErrInvalidField):
			h.logger.Debug(r.Context(), "rejected planet record", reqID, logger.Error(err))
			writeError(w, http.StatusUnprocessableEntity, "invalid_field", WrapKind(op, ErrInvalidField, err))
		default:
			h.logger.Debug(r.Context(), "malformed planet record", reqID, logger.Error(err))
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		}
		return
	}

	rec := p.Record()
	a, err := h.deps.Evaluate(r.Context(), rec)
	if err != nil {
		h.logger.Warn(r.Context(), "evaluation failed", reqID, logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "aborted", WrapKind(op, ErrAborted, err))
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Score:         a.Score,
		FlareOverride: a.FlareOverride,
		Penalties:     a.Penalties,
		Record:        model.FromRecord(rec),
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/checksplit/checksplit-backend/internal/api/dto"
	"github.com/checksplit/checksplit-backend/internal/domain/split"
	"github.com/checksplit/checksplit-backend/internal/observability"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// SplitHandler runs claim mutations, the live preview, and finalization.
type SplitHandler struct {
	*Base
	metrics *observability.Metrics
}

// NewSplitHandler creates a new split handler. Metrics may be nil.
func NewSplitHandler(store *session.Store, metrics *observability.Metrics) *SplitHandler {
	return &SplitHandler{Base: NewBase(store), metrics: metrics}
}

// Assign handles POST /api/sessions/{id}/assignments - one claim mutation.
func (h *SplitHandler) Assign(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	err := s.ApplyAssignment(session.AssignmentAction(req.Action), req.Item, req.Participant)
	if err != nil {
		status := http.StatusBadRequest
		apiErr := dto.BadRequestError(err.Error())
		if errors.Is(err, split.ErrNoItems) {
			status = http.StatusConflict
			apiErr = dto.ConflictError(err.Error())
		}
		h.WriteError(w, status, apiErr)
		return
	}

	// Mutations answer with the fresh preview so the UI can update running
	// totals without a second round trip.
	h.WriteJSON(w, http.StatusOK, dto.NewPreviewResponse(s.Preview()))
}

// Preview handles GET /api/sessions/{id}/preview - the live unrounded totals.
func (h *SplitHandler) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.NewPreviewResponse(s.Preview()))
}

// Settle handles POST /api/sessions/{id}/settle - finalizes the split.
func (h *SplitHandler) Settle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}

	settlement, err := s.Settle()
	if err != nil {
		if errors.Is(err, split.ErrNoParticipants) {
			h.WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if h.metrics != nil {
		h.metrics.SettlementsRun.Inc()
	}
	h.WriteJSON(w, http.StatusOK, dto.NewSettlementResponse(settlement))
}

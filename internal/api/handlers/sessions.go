package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checksplit/checksplit-backend/internal/api/dto"
	"github.com/checksplit/checksplit-backend/internal/flow"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// SessionsHandler manages session lifecycle and wizard navigation.
type SessionsHandler struct {
	*Base
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(store *session.Store) *SessionsHandler {
	return &SessionsHandler{Base: NewBase(store)}
}

// Create handles POST /api/sessions - starts a fresh bill-splitting run.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	h.WriteJSON(w, http.StatusCreated, dto.NewSessionResponse(s.ID, s.Step(), s.Receipt(), s.Participants()))
}

// Get handles GET /api/sessions/{id} - returns the session snapshot.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	h.snapshot(w, s)
}

// Delete handles DELETE /api/sessions/{id} - discards the session outright.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Advance handles POST /api/sessions/{id}/advance - applies a wizard event.
func (h *SessionsHandler) Advance(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req dto.AdvanceRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	step, err := s.Advance(flow.Event(req.Event))
	if err != nil {
		h.WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.StepResponse{Step: string(step)})
}

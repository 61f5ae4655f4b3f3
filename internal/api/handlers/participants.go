package handlers

import (
	"net/http"

	"github.com/checksplit/checksplit-backend/internal/api/dto"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// ParticipantsHandler manages the participant roster.
type ParticipantsHandler struct {
	*Base
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(store *session.Store) *ParticipantsHandler {
	return &ParticipantsHandler{Base: NewBase(store)}
}

// Add handles POST /api/sessions/{id}/participants - appends a blank slot.
func (h *ParticipantsHandler) Add(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	s.AddParticipant()
	h.snapshot(w, s)
}

// Rename handles PATCH /api/sessions/{id}/participants/{index}.
func (h *ParticipantsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	index, ok := h.IndexParam(w, r, "index")
	if !ok {
		return
	}

	var req dto.ParticipantEditRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := s.SetParticipantName(index, req.Name); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	h.snapshot(w, s)
}

// Remove handles DELETE /api/sessions/{id}/participants/{index}. Claims held
// by higher slots are re-indexed to follow their owners.
func (h *ParticipantsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	index, ok := h.IndexParam(w, r, "index")
	if !ok {
		return
	}

	if err := s.RemoveParticipant(index); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	h.snapshot(w, s)
}

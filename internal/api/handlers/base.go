package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/checksplit/checksplit-backend/internal/api/dto"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// Base provides shared functionality for all handlers.
type Base struct {
	store *session.Store
}

// NewBase creates a new base handler over the session store.
func NewBase(store *session.Store) *Base {
	return &Base{store: store}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// Session resolves the {id} URL parameter to a live session, writing a 404
// when it is unknown.
func (b *Base) Session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := b.store.Get(id)
	if !ok {
		b.WriteError(w, http.StatusNotFound, dto.NotFoundError("session"))
		return nil, false
	}
	return s, true
}

// DecodeJSON decodes the request body into v, writing a 400 on failure.
func (b *Base) DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return false
	}
	return true
}

// IndexParam parses an integer URL parameter, writing a 400 on failure.
func (b *Base) IndexParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	val := chi.URLParam(r, name)
	idx, err := strconv.Atoi(val)
	if err != nil {
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid index '"+val+"'"))
		return 0, false
	}
	return idx, true
}

// snapshot writes the current session state, the standard reply to every
// mutating call so the UI can re-render the last known good values.
func (b *Base) snapshot(w http.ResponseWriter, s *session.Session) {
	b.WriteJSON(w, http.StatusOK, dto.NewSessionResponse(s.ID, s.Step(), s.Receipt(), s.Participants()))
}

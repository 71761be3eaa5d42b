package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/judahn02/Professional-Development/internal/models"
)

// SessionService is the controller surface the handlers drive.
type SessionService interface {
	List(ctx context.Context) ([]models.Session, error)
	Get(ctx context.Context, id int64) (models.Session, error)
	Create(ctx context.Context, req models.WriteRequest) (models.Session, error)
	Update(ctx context.Context, id int64, req models.WriteRequest) (models.Session, error)
}

// SessionHandler handles session-related HTTP requests.
type SessionHandler struct {
	svc SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []models.Session{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	record, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.WriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrValidation,
			"invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Update handles PATCH /sessions/{id}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req models.WriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrValidation,
			"invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// sessionID parses the {id} route param. A non-integer or non-positive
// id is rejected before the service is ever consulted.
func sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ValidationError(
			models.ReasonBadID, "id", "Invalid session identifier."))
		return 0, false
	}
	return id, true
}

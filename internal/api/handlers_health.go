package api

import (
	"net/http"

	"github.com/judahn02/Professional-Development/internal/sessions"
)

// HealthResponse reports whether the backing store accepts connections.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthHandler struct {
	dialer sessions.Dialer
}

func NewHealthHandler(dialer sessions.Dialer) *HealthHandler {
	return &HealthHandler{dialer: dialer}
}

// Health handles GET /health: decrypt credentials, connect, close. The
// same path every request takes, minus the procedure call.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	conn, err := h.dialer.Connect(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	conn.Close()
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

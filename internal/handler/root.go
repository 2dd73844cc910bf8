package handler

import "net/http"

type rootResponse struct {
	Message  string `json:"message"`
	Database string `json:"database"`
}

// Root handles GET /. It reports liveness and store connectivity; an
// unreachable store is reported as "Disconnected", never as a failure.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	database := "Connected"
	if err := h.db.Ping(r.Context()); err != nil {
		database = "Disconnected"
	}
	writeJSON(w, http.StatusOK, rootResponse{
		Message:  "Portfolio Backend API is running!",
		Database: database,
	})
}

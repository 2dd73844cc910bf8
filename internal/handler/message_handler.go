package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// MessageHandler serves the contact form submission plus the message
// listing and mark-read endpoints. The listing endpoints are intentionally
// public: the deployment is a single-operator portfolio site with no user
// accounts.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a MessageHandler with the given service.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// createdData is the data payload of a successful submission.
type createdData struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Submit handles POST /api/contact.
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.messageService.Create(r.Context(), service.CreateMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		var invalid *service.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Reason)
			return
		}
		slog.Error("create message failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Database connection error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Message sent successfully! I'll get back to you soon.",
		Data:    createdData{ID: msg.ID, Timestamp: msg.CreatedAt},
	})
}

// List handles GET /api/messages. Returns all messages, newest first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.List(r.Context())
	if err != nil {
		slog.Error("list messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.Message{}
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: messages})
}

// MarkRead handles PUT /api/messages/{id}/read. Marking an already-read
// message is a no-op success.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	msg, err := h.messageService.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		slog.Error("mark message read failed", "message_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: msg})
}

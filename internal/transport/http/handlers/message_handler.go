package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkovac/relay/internal/service"
	"github.com/dkovac/relay/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListUsers returns everyone except the caller, for the contact sidebar.
func (h *MessageHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	users, err := h.messageService.ListContacts(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetConversation returns the message history with the user in the path.
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	otherID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	userID := middleware.GetUserID(r.Context())

	messages, err := h.messageService.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		log.Printf("ERROR get conversation: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Send persists a message to the user in the path and pushes it over the
// live channel if they're connected.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	receiverID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	senderID := middleware.GetUserID(r.Context())

	msg, err := h.messageService.Send(r.Context(), senderID, receiverID, input.Text, input.Image)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "Text or image is required")
		} else {
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

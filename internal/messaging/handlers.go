// internal/messaging/handlers.go

package messaging

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service     Service
	hub         *Hub
	authService auth.Service
}

func NewHandler(service Service, hub *Hub, authService auth.Service) *Handler {
	return &Handler{service: service, hub: hub, authService: authService}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.service.SendMessage(r.Context(), principal.ID, &req)
	if err != nil {
		h.respondMessagingError(w, err, "Failed to send message")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, msg)
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), principal.ID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load conversations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, conversations)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversationID, err := strconv.ParseInt(mux.Vars(r)["conversationID"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.service.ListMessages(r.Context(), principal.ID, conversationID, limit, offset)
	if err != nil {
		h.respondMessagingError(w, err, "Failed to load messages")
		return
	}

	utils.RespondWithData(w, http.StatusOK, messages)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversationID, err := strconv.ParseInt(mux.Vars(r)["conversationID"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	if err := h.service.MarkRead(r.Context(), principal.ID, conversationID); err != nil {
		h.respondMessagingError(w, err, "Failed to mark conversation read")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Marked read")
}

// HandleWebSocket upgrades the connection. Browsers cannot set an
// Authorization header on the upgrade request, so the token rides in a
// query parameter.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	claims, err := h.authService.ValidateToken(r.Context(), token)
	if err != nil || claims.Type != "access" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, claims.UserID, h.service)
	client.Start()
}

// respondMessagingError collapses unauthorized and not-found
// externally.
func (h *Handler) respondMessagingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMatchNotFound),
		errors.Is(err, ErrConversationNotFound),
		errors.Is(err, ErrNotParticipant):
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
	default:
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, fallback)
	}
}

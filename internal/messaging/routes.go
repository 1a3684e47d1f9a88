package messaging

import (
	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/messages").Subrouter()
	r.Use(middleware.Authenticate)

	r.HandleFunc("", handler.SendMessage).Methods("POST")
	r.HandleFunc("/conversations", handler.ListConversations).Methods("GET")
	r.HandleFunc("/conversations/{conversationID:[0-9]+}", handler.ListMessages).Methods("GET")
	r.HandleFunc("/conversations/{conversationID:[0-9]+}/read", handler.MarkRead).Methods("POST")

	// The websocket endpoint authenticates via query token, not the
	// Authorization header middleware.
	router.HandleFunc("/api/v1/ws", handler.HandleWebSocket)
}

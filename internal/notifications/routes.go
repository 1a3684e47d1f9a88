package notifications

import (
	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/notifications").Subrouter()
	r.Use(middleware.Authenticate)

	r.HandleFunc("", handler.List).Methods("GET")
	r.HandleFunc("/unread", handler.UnreadCount).Methods("GET")
	r.HandleFunc("/{notificationID:[0-9]+}/read", handler.MarkRead).Methods("POST")
	r.HandleFunc("/read-all", handler.MarkAllRead).Methods("POST")
	r.HandleFunc("/devices", handler.RegisterPushToken).Methods("POST")
	r.HandleFunc("/devices", handler.UnregisterPushToken).Methods("DELETE")
}

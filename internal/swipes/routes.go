package swipes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/swipes").Subrouter()
	r.Use(middleware.Authenticate)

	workerOnly := middleware.RequireRole(auth.RoleWorker)

	r.Handle("", workerOnly(http.HandlerFunc(handler.PerformSwipe))).Methods("POST")
	r.Handle("/rewind", workerOnly(http.HandlerFunc(handler.Rewind))).Methods("POST")
	r.Handle("/feed", workerOnly(http.HandlerFunc(handler.GetFeed))).Methods("GET")
	r.HandleFunc("/credits", handler.GetCredits).Methods("GET")
}

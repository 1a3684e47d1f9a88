package matches

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/matches").Subrouter()
	r.Use(middleware.Authenticate)

	employerOnly := middleware.RequireRole(auth.RoleEmployer)

	r.HandleFunc("", handler.GetMatches).Methods("GET")
	r.Handle("/approve", employerOnly(http.HandlerFunc(handler.ApproveApplication))).Methods("POST")
	r.HandleFunc("/{matchID:[0-9]+}/open", handler.OpenMatch).Methods("POST")
	r.HandleFunc("/{matchID:[0-9]+}", handler.Unmatch).Methods("DELETE")
}

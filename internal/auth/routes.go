package auth

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware) {
	public := router.PathPrefix("/api/v1/auth").Subrouter()
	public.HandleFunc("/register", handler.Register).Methods("POST")
	public.HandleFunc("/login", handler.Login).Methods("POST")
	public.HandleFunc("/refresh", handler.Refresh).Methods("POST")

	protected := router.PathPrefix("/api/v1/auth").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/logout", handler.Logout).Methods("POST")
	protected.HandleFunc("/me", handler.GetMe).Methods("GET")
	protected.HandleFunc("/account", handler.DeleteAccount).Methods("DELETE")
}

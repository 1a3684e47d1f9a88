package jobs

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/jobs").Subrouter()
	r.Use(middleware.Authenticate)

	employerOnly := middleware.RequireRole(auth.RoleEmployer)

	r.HandleFunc("", handler.ListActiveJobs).Methods("GET")
	r.HandleFunc("/{jobID:[0-9]+}", handler.GetJob).Methods("GET")

	r.Handle("", employerOnly(http.HandlerFunc(handler.CreateJob))).Methods("POST")
	r.Handle("/mine", employerOnly(http.HandlerFunc(handler.ListMyJobs))).Methods("GET")
	r.Handle("/{jobID:[0-9]+}", employerOnly(http.HandlerFunc(handler.UpdateJob))).Methods("PUT")
	r.Handle("/{jobID:[0-9]+}/status", employerOnly(http.HandlerFunc(handler.ChangeStatus))).Methods("PUT")
	r.Handle("/{jobID:[0-9]+}/boost", employerOnly(http.HandlerFunc(handler.BoostJob))).Methods("POST")
}

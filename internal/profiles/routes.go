package profiles

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/profiles").Subrouter()
	r.Use(middleware.Authenticate)

	workerOnly := middleware.RequireRole(auth.RoleWorker)
	employerOnly := middleware.RequireRole(auth.RoleEmployer)

	worker := r.PathPrefix("/worker").Subrouter()
	worker.HandleFunc("/me", handler.GetMyWorkerProfile).Methods("GET")
	worker.HandleFunc("/{userID:[0-9]+}", handler.GetWorkerProfile).Methods("GET")
	worker.Handle("", workerOnly(http.HandlerFunc(handler.UpsertWorkerProfile))).Methods("PUT")

	employer := r.PathPrefix("/employer").Subrouter()
	employer.HandleFunc("/me", handler.GetMyEmployerProfile).Methods("GET")
	employer.HandleFunc("/{userID:[0-9]+}", handler.GetEmployerProfile).Methods("GET")
	employer.Handle("", employerOnly(http.HandlerFunc(handler.UpsertEmployerProfile))).Methods("PUT")

	r.HandleFunc("/avatar", handler.UploadAvatar).Methods("POST")
}

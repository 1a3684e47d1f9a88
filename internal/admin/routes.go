// internal/admin/routes.go

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

// RegisterRoutes wires the moderation endpoints. The admin surface is
// served by a chi subrouter mounted under /api/v1/admin; the report and
// verification intake endpoints stay on the main router since any
// authenticated user (or employer) can reach them.
func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	employerOnly := middleware.RequireRole(auth.RoleEmployer)

	public := router.PathPrefix("/api/v1").Subrouter()
	public.Use(middleware.Authenticate)
	public.HandleFunc("/reports", handler.CreateReport).Methods("POST")
	public.Handle("/verification", employerOnly(http.HandlerFunc(handler.RequestVerification))).Methods("POST")

	admin := chi.NewRouter()
	admin.Use(middleware.Authenticate)
	admin.Use(middleware.RequireRole(auth.RoleAdmin))

	admin.Get("/api/v1/admin/reports", handler.ListReports)
	admin.Post("/api/v1/admin/reports/{reportID}/resolve", handler.ResolveReport)
	admin.Post("/api/v1/admin/users/{userID}/warn", handler.WarnUser)
	admin.Post("/api/v1/admin/users/{userID}/suspend", handler.SuspendUser)
	admin.Post("/api/v1/admin/users/{userID}/reinstate", handler.ReinstateUser)
	admin.Post("/api/v1/admin/jobs/{jobID}/close", handler.CloseJob)
	admin.Get("/api/v1/admin/actions", handler.ListActions)
	admin.Get("/api/v1/admin/verification", handler.ListVerificationRequests)
	admin.Post("/api/v1/admin/verification/{requestID}/decide", handler.DecideVerification)

	router.PathPrefix("/api/v1/admin").Handler(admin)
}

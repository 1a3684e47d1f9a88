package payments

import (
	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *auth.Middleware) {
	r := router.PathPrefix("/api/v1/payments").Subrouter()

	// Provider redirect targets, signature-authenticated.
	r.HandleFunc("/success", handler.PaymentSuccess).Methods("GET")
	r.HandleFunc("/fail", handler.PaymentFailure).Methods("GET")

	protected := router.PathPrefix("/api/v1/payments").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/packages", handler.ListPackages).Methods("GET")
	protected.HandleFunc("/plans", handler.ListPlans).Methods("GET")
	protected.HandleFunc("/checkout/package", handler.CheckoutPackage).Methods("POST")
	protected.HandleFunc("/checkout/subscription", handler.CheckoutSubscription).Methods("POST")
	protected.HandleFunc("/subscription", handler.GetSubscription).Methods("GET")
}

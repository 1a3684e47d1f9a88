// internal/payments/handlers.go

package payments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load packages")
		return
	}
	utils.RespondWithData(w, http.StatusOK, packages)
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load plans")
		return
	}
	utils.RespondWithData(w, http.StatusOK, plans)
}

func (h *Handler) CheckoutPackage(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CheckoutPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreatePackageCheckout(r.Context(), principal.ID, &req)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Package not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to create checkout")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, resp)
}

func (h *Handler) CheckoutSubscription(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CheckoutSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreateSubscriptionCheckout(r.Context(), principal.ID, &req)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to create checkout")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, resp)
}

// PaymentSuccess is the provider's success redirect target. It is
// unauthenticated; trust comes from the signature.
func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoiceID := q.Get("InvId")
	outSum := q.Get("OutSum")
	signature := q.Get("SignatureValue")

	if invoiceID == "" || signature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing payment parameters")
		return
	}

	err := h.service.HandleSuccess(r.Context(), invoiceID, outSum, signature)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadSignature):
			utils.RespondWithError(w, http.StatusForbidden, "Invalid signature")
		case errors.Is(err, ErrAmountMismatch):
			utils.RespondWithError(w, http.StatusForbidden, "Amount mismatch")
		case errors.Is(err, ErrTransactionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		default:
			utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to process payment")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Payment processed")
}

func (h *Handler) PaymentFailure(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.URL.Query().Get("InvId")
	if invoiceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing payment parameters")
		return
	}

	if err := h.service.HandleFailure(r.Context(), invoiceID); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to record payment failure")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Payment cancelled")
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := h.service.GetActiveSubscription(r.Context(), principal.ID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load subscription")
		return
	}
	if sub == nil {
		utils.RespondWithData(w, http.StatusOK, map[string]string{"tier": TierFree})
		return
	}

	utils.RespondWithData(w, http.StatusOK, sub)
}

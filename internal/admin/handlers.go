// internal/admin/handlers.go

package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/utils"
)

const maxDocumentSize = 15 << 20 // 15 MB

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateReport is available to any authenticated user, not just
// admins.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TargetUserID == nil && req.TargetJobID == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "A report needs a target user or job")
		return
	}

	report, err := h.service.CreateReport(r.Context(), principal.ID, &req)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to create report")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, report)
}

// RequestVerification lets an employer submit a verification document.
func (h *Handler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing document field")
		return
	}
	defer file.Close()

	req, err := h.service.RequestVerification(r.Context(), principal.ID, file, header)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to submit verification request")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, req)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context(),
		r.URL.Query().Get("status"), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load reports")
		return
	}
	utils.RespondWithData(w, http.StatusOK, reports)
}

func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	principal, reportID, ok := h.principalAndID(w, r, "reportID")
	if !ok {
		return
	}

	var req ResolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ResolveReport(r.Context(), principal.ID, reportID, &req); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to resolve report")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Report resolved")
}

func (h *Handler) WarnUser(w http.ResponseWriter, r *http.Request) {
	principal, userID, ok := h.principalAndID(w, r, "userID")
	if !ok {
		return
	}

	var req SuspendUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.WarnUser(r.Context(), principal.ID, userID, req.Reason); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to warn user")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "User warned")
}

func (h *Handler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	principal, userID, ok := h.principalAndID(w, r, "userID")
	if !ok {
		return
	}

	var req SuspendUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SuspendUser(r.Context(), principal.ID, userID, req.Reason); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to suspend user")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "User suspended")
}

func (h *Handler) ReinstateUser(w http.ResponseWriter, r *http.Request) {
	principal, userID, ok := h.principalAndID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.service.ReinstateUser(r.Context(), principal.ID, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to reinstate user")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "User reinstated")
}

func (h *Handler) CloseJob(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.principalAndID(w, r, "jobID")
	if !ok {
		return
	}

	var req SuspendUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.CloseJob(r.Context(), principal.ID, jobID, req.Reason); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Job closed")
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.service.ListActions(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load actions")
		return
	}
	utils.RespondWithData(w, http.StatusOK, actions)
}

func (h *Handler) ListVerificationRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListVerificationRequests(r.Context(),
		r.URL.Query().Get("status"), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load verification requests")
		return
	}
	utils.RespondWithData(w, http.StatusOK, requests)
}

func (h *Handler) DecideVerification(w http.ResponseWriter, r *http.Request) {
	principal, requestID, ok := h.principalAndID(w, r, "requestID")
	if !ok {
		return
	}

	var req VerificationDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DecideVerification(r.Context(), principal.ID, requestID, &req); err != nil {
		if errors.Is(err, ErrVerificationNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Verification request not found")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to decide verification")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Verification decided")
}

func (h *Handler) principalAndID(w http.ResponseWriter, r *http.Request, param string) (auth.Principal, int64, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Principal{}, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return auth.Principal{}, 0, false
	}

	return principal, id, true
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

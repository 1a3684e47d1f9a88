// internal/jobs/handlers.go

package jobs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		utils.RespondWithError(w, http.StatusBadRequest, "salary_min must not exceed salary_max")
		return
	}

	job, err := h.service.PostJob(r.Context(), principal.ID, &req)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to create job")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.principalAndJobID(w, r)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.service.UpdateJob(r.Context(), principal.ID, jobID, &req)
	if err != nil {
		h.respondJobError(w, err, "Failed to update job")
		return
	}

	utils.RespondWithData(w, http.StatusOK, job)
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.principalAndJobID(w, r)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ChangeStatus(r.Context(), principal.ID, jobID, req.Status); err != nil {
		h.respondJobError(w, err, "Failed to change job status")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Status updated")
}

func (h *Handler) BoostJob(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.principalAndJobID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.BoostJob(r.Context(), principal.ID, jobID)
	if err != nil {
		if errors.Is(err, ErrNoBoostCredits) {
			utils.RespondWithError(w, http.StatusPaymentRequired, "No boost credits available")
			return
		}
		h.respondJobError(w, err, "Failed to boost job")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(mux.Vars(r)["jobID"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		h.respondJobError(w, err, "Failed to load job")
		return
	}

	utils.RespondWithData(w, http.StatusOK, job)
}

func (h *Handler) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, err := h.service.ListEmployerJobs(r.Context(), principal.ID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load jobs")
		return
	}

	utils.RespondWithData(w, http.StatusOK, jobs)
}

func (h *Handler) ListActiveJobs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	offset := queryInt(r, "offset", 0)

	jobs, err := h.service.ListActiveJobs(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load jobs")
		return
	}

	utils.RespondWithData(w, http.StatusOK, jobs)
}

func (h *Handler) principalAndJobID(w http.ResponseWriter, r *http.Request) (auth.Principal, int64, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Principal{}, 0, false
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["jobID"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return auth.Principal{}, 0, false
	}

	return principal, jobID, true
}

// respondJobError maps service errors to HTTP responses. Ownership
// failures come back as 404 so callers cannot tell a foreign post from
// a missing one.
func (h *Handler) respondJobError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrNotOwner):
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
	default:
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, fallback)
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// internal/swipes/handlers.go

package swipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) PerformSwipe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.PerformSwipe(r.Context(), principal.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCredits):
			utils.RespondWithErrorCode(w, http.StatusForbidden, utils.CodeSwipeLimit,
				"Daily swipe limit reached")
		case errors.Is(err, ErrAlreadySwiped):
			utils.RespondWithError(w, http.StatusConflict, "Job already swiped")
		case errors.Is(err, ErrJobNotAvailable):
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		default:
			utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to record swipe")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

func (h *Handler) Rewind(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp, err := h.service.Rewind(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, ErrNothingToRewind) {
			utils.RespondWithError(w, http.StatusNotFound, "No interactions to rewind")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to rewind")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	feed, err := h.service.GetMatchedJobs(r.Context(), principal.ID, limit, offset)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load feed")
		return
	}

	utils.RespondWithData(w, http.StatusOK, feed)
}

func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	credits, err := h.service.GetCredits(r.Context(), principal.ID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load credits")
		return
	}

	utils.RespondWithData(w, http.StatusOK, credits)
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

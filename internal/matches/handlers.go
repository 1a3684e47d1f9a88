// internal/matches/handlers.go

package matches

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

func (h *Handler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.ApproveApplication(r.Context(), principal.ID, &req)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			utils.RespondWithError(w, http.StatusForbidden, "Unauthorized")
			return
		}
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to approve application")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), principal.ID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, "Failed to load matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

func (h *Handler) OpenMatch(w http.ResponseWriter, r *http.Request) {
	principal, matchID, ok := principalAndMatchID(w, r)
	if !ok {
		return
	}

	if err := h.service.OpenMatch(r.Context(), principal.ID, matchID); err != nil {
		h.respondMatchError(w, err, "Failed to open match")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Match opened")
}

func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	principal, matchID, ok := principalAndMatchID(w, r)
	if !ok {
		return
	}

	if err := h.service.Unmatch(r.Context(), principal.ID, matchID); err != nil {
		h.respondMatchError(w, err, "Failed to unmatch")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Unmatched")
}

// respondMatchError collapses unauthorized and not-found externally.
func (h *Handler) respondMatchError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusNotFound, "Match not found")
	default:
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, utils.CodeUnknownError, fallback)
	}
}

func principalAndMatchID(w http.ResponseWriter, r *http.Request) (auth.Principal, int64, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Principal{}, 0, false
	}

	matchID, err := strconv.ParseInt(mux.Vars(r)["matchID"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return auth.Principal{}, 0, false
	}

	return principal, matchID, true
}

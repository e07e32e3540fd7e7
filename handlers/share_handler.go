package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/types/share"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

type ShareHandler struct {
	shareService *services.ShareService
}

func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

func (h *ShareHandler) AddShare(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req share.AddShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	shareID, err := h.shareService.AddShare(ctx, uid, req.Type, req.Status, req.MateID)
	if err != nil {
		logger.Warnf("AddShare Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int64{"share_id": shareID})
}

// JoinAndroidList is unauthenticated: people sign up for the Android launch
// before they have an account.
func (h *ShareHandler) JoinAndroidList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.shareService.JoinAndroidList(ctx, req.Email); err != nil {
		logger.Warnf("JoinAndroidList Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Added to the Android app list"})
}

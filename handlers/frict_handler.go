package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

type FrictHandler struct {
	frictService *services.FrictService
}

func NewFrictHandler(frictService *services.FrictService) *FrictHandler {
	return &FrictHandler{
		frictService: frictService,
	}
}

func (h *FrictHandler) AddFrict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req frict.AddFrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	frictID, err := h.frictService.AddFrict(ctx, req.MateID, req.Base, req.FromDate, req.Rating, req.Notes, req.Creator, req.Lat, req.Lon)
	if err != nil {
		logger.Warnf("AddFrict Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int64{"frict_id": frictID})
}

func (h *FrictHandler) UpdateFrict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	frictID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid frict id")
		return
	}

	var req frict.UpdateFrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.frictService.UpdateFrict(ctx, frictID, req.MateID, req.Base, req.FromDate, req.Rating, req.Notes, req.Creator, req.Lat, req.Lon); err != nil {
		logger.Warnf("UpdateFrict Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"frict_id": frictID})
}

func (h *FrictHandler) RemoveFrict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	frictID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid frict id")
		return
	}
	creator, err := strconv.Atoi(r.URL.Query().Get("creator"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'creator' must be an integer")
		return
	}

	if _, err := h.frictService.RemoveFrict(ctx, frictID, creator); err != nil {
		logger.Warnf("RemoveFrict Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Frict removed successfully"})
}

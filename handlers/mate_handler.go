package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/middleware"
	"frictlistAPI/services"

	"github.com/gorilla/mux"
)

type MateHandler struct {
	mateService *services.MateService
}

func NewMateHandler(mateService *services.MateService) *MateHandler {
	return &MateHandler{
		mateService: mateService,
	}
}

func (h *MateHandler) AddMate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req mate.AddMateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mateID, err := h.mateService.AddMate(ctx, uid, req.FirstName, req.LastName, req.Gender)
	if err != nil {
		logger.Warnf("AddMate Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int64{"mate_id": mateID})
}

func (h *MateHandler) UpdateMate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	mateID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid mate id")
		return
	}

	var req mate.AddMateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.mateService.UpdateMate(ctx, uid, mateID, req.FirstName, req.LastName, req.Gender); err != nil {
		logger.Warnf("UpdateMate Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"mate_id": mateID})
}

func (h *MateHandler) RemoveMate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	mateID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid mate id")
		return
	}
	creator, err := strconv.Atoi(r.URL.Query().Get("creator"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'creator' must be an integer")
		return
	}

	if _, err := h.mateService.RemoveMate(ctx, mateID, creator); err != nil {
		logger.Warnf("RemoveMate Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Mate removed successfully"})
}

func (h *MateHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req mate.SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	requestID, err := h.mateService.SendRequest(ctx, uid, req.MateID, req.MateUID)
	if err != nil {
		logger.Warnf("SendRequest Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int64{"request_id": requestID})
}

func (h *MateHandler) RespondRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req mate.RespondRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.mateService.RespondRequest(ctx, uid, requestID, req.MateID, req.Status)
	if err != nil {
		logger.Warnf("RespondRequest Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"status": status})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

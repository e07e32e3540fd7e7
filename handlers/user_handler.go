package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"frictlistAPI/internal/types/feed"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.userService.Profile(ctx, uid)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.RegisterDeviceToken(ctx, uid, req.Token); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device token updated"})
}

// SearchMates answers the mate search as a tab-separated table flagged
// "user_search". Matching is by first name, last name and gender.
func (h *UserHandler) SearchMates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	first := r.URL.Query().Get("first_name")
	last := r.URL.Query().Get("last_name")
	if first == "" || last == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'first_name' and 'last_name' are required")
		return
	}
	gender, err := strconv.Atoi(r.URL.Query().Get("gender"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'gender' must be an integer")
		return
	}

	results, err := h.userService.SearchMates(ctx, uid, first, last, gender)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	rows := make([]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, res.TabRow())
	}
	respondWithTable(w, feed.FlagUserSearch, rows)
}

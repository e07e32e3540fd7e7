package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"frictlistAPI/internal/auth"
	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/types/user"
	"frictlistAPI/services"
)

type AuthHandler struct {
	userService *services.UserService
	tokens      *auth.TokenService
}

func NewAuthHandler(userService *services.UserService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	uid, err := h.userService.SignUp(ctx, &req)
	if err != nil {
		logger.Warnf("SignUp Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(uid)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"uid":   uid,
		"token": token,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	uid, err := h.userService.SignIn(ctx, req.Username, req.Password, req.Token)
	if err != nil {
		logger.Warnf("SignIn Handler: Service error: %v", err)
		respondWithServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(uid)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"uid":   uid,
		"token": token,
	})
}

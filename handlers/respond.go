package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"frictlistAPI/internal/apperr"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithTable writes a tab-separated result table: a flag line naming
// the table kind, then one row per line. Legacy mobile clients parse this
// format directly.
func respondWithTable(w http.ResponseWriter, flag string, rows []string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	var b strings.Builder
	b.WriteString(flag)
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	w.Write([]byte(b.String()))
}

// statusForError maps service errors to HTTP statuses so every handler
// reports failures the same way.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidID),
		errors.Is(err, apperr.ErrInvalidCreatorFlag),
		errors.Is(err, apperr.ErrInvalidStatus),
		errors.Is(err, apperr.ErrInvalidShareType),
		errors.Is(err, apperr.ErrInvalidShareStatus),
		errors.Is(err, apperr.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFoundOrAmbiguous):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrCredentialMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrDuplicateEmail),
		errors.Is(err, apperr.ErrDuplicateUsername):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	respondWithError(w, statusForError(err), err.Error())
}

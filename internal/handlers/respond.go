package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lawrencejr5/habibee/internal/apperrors"
)

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a server fault and stays opaque to the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrUnauthorized):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		http.Error(w, "Habit already completed today", http.StatusConflict)
	case errors.Is(err, apperrors.ErrDuplicateName):
		http.Error(w, "Name already taken", http.StatusConflict)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

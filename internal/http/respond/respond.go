// Package respond holds the helpers shared by the API handlers.
package respond

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

// Sessions hands out the live session of a signed-in user.
type Sessions interface {
	Get(ctx context.Context, userID uuid.UUID) (*session.Session, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Session resolves the caller's session. On failure it writes the response
// and returns false.
func Session(w http.ResponseWriter, r *http.Request, sessions Sessions) (*session.Session, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	s, err := sessions.Get(r.Context(), userID)
	if err != nil {
		slog.Error("loading session", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")

		return nil, false
	}

	return s, true
}

// Decode reads a JSON body, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

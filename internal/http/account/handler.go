package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=account
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignUp(ctx context.Context, email, password string) (*auth.Session, error)
}

type SessionDropper interface {
	Drop(userID uuid.UUID)
}

type Handler struct {
	auth     Authenticator
	sessions SessionDropper
}

func NewHandler(authenticator Authenticator, sessions SessionDropper) *Handler {
	return &Handler{auth: authenticator, sessions: sessions}
}

// Routes are public.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/signin", h.signIn)
	r.Post("/signup", h.signUp)
}

// ProtectedRoutes need an authenticated caller.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Post("/signout", h.signOut)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

func (req credentialsRequest) lang() i18n.Language {
	if l, err := i18n.ParseLanguage(req.Language); err == nil {
		return l
	}

	return i18n.Default
}

type sessionResponse struct {
	AccessToken          string    `json:"access_token,omitempty"`
	RefreshToken         string    `json:"refresh_token,omitempty"`
	ExpiresIn            int       `json:"expires_in,omitempty"`
	UserID               uuid.UUID `json:"user_id,omitzero"`
	ConfirmationRequired bool      `json:"confirmation_required"`
	Message              string    `json:"message,omitempty"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	s, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err, req.lang())
		return
	}

	respond.JSON(w, http.StatusOK, toSessionResponse(s))
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	s, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err, req.lang())
		return
	}

	if s == nil {
		respond.JSON(w, http.StatusAccepted, sessionResponse{
			ConfirmationRequired: true,
			Message:              i18n.T(req.lang(), i18n.KeyCheckEmail),
		})

		return
	}

	respond.JSON(w, http.StatusCreated, toSessionResponse(s))
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if userID, ok := auth.UserID(r.Context()); ok {
		h.sessions.Drop(userID)
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		UserID:       s.UserID,
	}
}

func writeAuthError(w http.ResponseWriter, err error, lang i18n.Language) {
	status := http.StatusUnauthorized
	if !errors.Is(err, auth.ErrAuthFailed) {
		slog.Error("auth service unreachable", "error", err)
		status = http.StatusBadGateway
	}

	respond.Error(w, status, auth.Message(err, lang))
}

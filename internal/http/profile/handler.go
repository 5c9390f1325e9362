package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

type Handler struct {
	sessions respond.Sessions
}

func NewHandler(sessions respond.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/language", h.language)
	r.With(middleware.AllowContentType("application/json")).Put("/language", h.setLanguage)
}

type languageResponse struct {
	Language  i18n.Language   `json:"language"`
	Supported []i18n.Language `json:"supported"`
}

func (h *Handler) language(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, languageResponse{Language: s.Language(), Supported: i18n.Languages})
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	var req setLanguageRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	lang, err := i18n.ParseLanguage(req.Language)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.SetLanguage(r.Context(), lang); err != nil {
		slog.Error("saving language", "user_id", s.UserID(), "error", err)
		respond.Error(w, http.StatusInternalServerError, i18n.T(s.Language(), i18n.KeySaveFailed))

		return
	}

	respond.JSON(w, http.StatusOK, languageResponse{Language: lang, Supported: i18n.Languages})
}

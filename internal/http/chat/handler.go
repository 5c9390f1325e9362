package chat

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

type Handler struct {
	sessions respond.Sessions
}

func NewHandler(sessions respond.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.history)
	r.With(middleware.AllowContentType("application/json")).Post("/", h.send)
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      chat.Role `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func toResponse(m chat.Message) messageResponse {
	return messageResponse{ID: m.ID, Role: m.Role, Text: m.Text, CreatedAt: m.CreatedAt}
}

type historyResponse struct {
	Messages    []messageResponse `json:"messages"`
	Suggestions []string          `json:"suggestions"`
	Thinking    bool              `json:"thinking"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	snap := s.Snapshot()

	msgs := make([]messageResponse, len(snap.Messages))
	for i, m := range snap.Messages {
		msgs[i] = toResponse(m)
	}

	respond.JSON(w, http.StatusOK, historyResponse{
		Messages:    msgs,
		Suggestions: i18n.SuggestedPrompts(snap.Language),
		Thinking:    snap.Thinking,
	})
}

type sendRequest struct {
	Text string `json:"text"`
}

type sendResponse struct {
	Reply messageResponse `json:"reply"`
	Saved bool            `json:"saved"`
}

// send always answers with the assistant's reply text; assistant failures are
// already localized by the session.
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	var req sendRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	reply, err := s.SendMessage(r.Context(), req.Text)

	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, sendResponse{Reply: toResponse(reply), Saved: true})
	case errors.Is(err, session.ErrEmptyPrompt):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrReplyNotSaved):
		respond.JSON(w, http.StatusOK, sendResponse{Reply: toResponse(reply), Saved: false})
	default:
		slog.Error("sending chat message", "user_id", s.UserID(), "error", err)
		respond.Error(w, http.StatusInternalServerError, i18n.T(s.Language(), i18n.KeySaveFailed))
	}
}

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	httptx "github.com/MrJamesThe3rd/finassist/internal/http/transaction"
	"github.com/MrJamesThe3rd/finassist/internal/news"
)

type Handler struct {
	sessions respond.Sessions
}

func NewHandler(sessions respond.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
	r.Get("/news", h.news)
	r.Get("/achievements", h.achievements)
	r.Delete("/achievements/{id}", h.dismiss)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toDashboardResponse(s.Dashboard(httptx.ParseFilter(r))))
}

func (h *Handler) news(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	items, loading := s.News()
	if items == nil {
		items = []news.Item{}
	}

	respond.JSON(w, http.StatusOK, newsResponse{Items: items, Loading: loading})
}

// achievements evaluates goals on every poll, so a month rollover observed by
// a polling client surfaces its notices here.
func (h *Handler) achievements(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	lang := s.Language()
	notices := s.Achievements()

	resp := make([]achievementResponse, len(notices))
	for i, n := range notices {
		resp[i] = toAchievementResponse(n, lang)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	if !s.DismissAchievement(chi.URLParam(r, "id")) {
		respond.Error(w, http.StatusNotFound, "achievement not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package leaderboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/accountd/accountd/internal/platform/httpx"
)

// Handler wires the leaderboard HTTP endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers leaderboard routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/leaderboard", h.top)
}

type leadersResponse struct {
	Success bool    `json:"success"`
	Leaders []Entry `json:"leaders"`
}

func (h *Handler) top(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.service.Top(r.Context(), limit)
	if err != nil {
		h.logger.Error("leaderboard read", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	httpx.JSON(w, http.StatusOK, leadersResponse{Success: true, Leaders: entries})
}

package account

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/accountd/accountd/internal/platform/httpx"
)

// Client-facing messages. Raw store errors are never passed through; login
// uses one fixed message for every failure so responses cannot be used to
// probe which usernames exist.
const (
	msgMissingFields      = "email, username and password are required"
	msgDuplicate          = "email or username already taken"
	msgInvalidCredentials = "Invalid username or password"
	msgNotFound           = "user not found"
	msgInternal           = "internal server error"
)

// Handler wires HTTP endpoints for account flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers account routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/add-points", h.addPoints)
	r.Get("/user/{userID}", h.getUser)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// addPointsRequest carries no validate tags: an absent or zero userId can
// never match a row (ids start at 1), so the not-found path answers it.
type addPointsRequest struct {
	UserID int64 `json:"userId"`
	Points int64 `json:"points"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

// balancePayload mirrors userPayload minus the email, matching the
// add-points response shape.
type balancePayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

type userResponse struct {
	Success bool `json:"success"`
	User    any  `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			httpx.Fail(w, http.StatusBadRequest, msgDuplicate)
			return
		}
		h.logger.Error("register account", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: toUserPayload(user)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: toUserPayload(user)})
}

func (h *Handler) addPoints(w http.ResponseWriter, r *http.Request) {
	var req addPointsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.AddPoints(r.Context(), req.UserID, req.Points)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Error("add points", slog.Int64("user_id", req.UserID), slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: balancePayload{
		ID:       user.ID,
		Username: user.Username,
		Points:   user.Points,
	}})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Error("get user", slog.Int64("user_id", id), slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.JSON(w, http.StatusOK, userResponse{Success: true, User: toUserPayload(user)})
}

func toUserPayload(user *User) userPayload {
	return userPayload{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Points:   user.Points,
	}
}

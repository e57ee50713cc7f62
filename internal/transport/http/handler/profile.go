package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/altynbekov/streamflix/internal/domain"
	"github.com/altynbekov/streamflix/internal/identity"
	"github.com/gin-gonic/gin"
)

type profileUsecaser interface {
	UpdateFavorites(ctx context.Context, userID string, favorites []string) (*domain.User, error)
	UpdateLastWatched(ctx context.Context, userID string, lastWatched []string) (*domain.User, error)
}

type ProfileHandler struct {
	profile profileUsecaser
	logger  *slog.Logger
}

func NewProfileHandler(profile profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: logger.With("component", "profile_handler")}
}

type listRequest struct {
	Items []string `json:"items" binding:"required"`
}

type profileResponse struct {
	Success     bool     `json:"success"`
	ID          string   `json:"_id"`
	Favorites   []string `json:"favorites"`
	LastWatched []string `json:"lastWatched"`
}

// PUT /api/users/favorites
func (h *ProfileHandler) UpdateFavorites(c *gin.Context) {
	h.updateList(c, h.profile.UpdateFavorites)
}

// PUT /api/users/last-watched
func (h *ProfileHandler) UpdateLastWatched(c *gin.Context) {
	h.updateList(c, h.profile.UpdateLastWatched)
}

func (h *ProfileHandler) updateList(c *gin.Context, update func(context.Context, string, []string) (*domain.User, error)) {
	user := identity.FromContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authorized to access this route"})
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	updated, err := update(c.Request.Context(), user.ID, req.Items)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Msg})
			return
		}
		h.logger.Error("update profile list", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		Success:     true,
		ID:          updated.ID,
		Favorites:   updated.Favorites,
		LastWatched: updated.LastWatched,
	})
}

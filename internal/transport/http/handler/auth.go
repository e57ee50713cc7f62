package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/altynbekov/streamflix/internal/domain"
	"github.com/altynbekov/streamflix/internal/metrics"
	"github.com/altynbekov/streamflix/internal/transport/http/middleware"
	"github.com/altynbekov/streamflix/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type AuthHandler struct {
	auth     authUsecaser
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewAuthHandler(auth authUsecaser, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		tokenTTL: tokenTTL,
		logger:   logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"     binding:"required,max=70"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse matches what the frontend stores in localStorage: the token
// plus non-sensitive identity fields. The password hash is never serialized.
type authResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, signed, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errEmailExists})
		case errors.As(err, &verr):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Msg})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			h.logger.Error("register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errInternalServer})
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.sendSession(c, user, signed)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, signed, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("unknown_email").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errUnknownEmail})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errWrongPassword})
		case errors.As(err, &verr):
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Msg})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.sendSession(c, user, signed)
}

// GET /api/auth/logout
// Runs behind the auth middleware. There is no server-side revocation;
// logout clears the cookie and trusts the client to drop the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
}

// sendSession sets the HTTP-only session cookie and writes the auth
// response body. Cookie and token expire together.
func (h *AuthHandler) sendSession(c *gin.Context, user *domain.User, signed string) {
	c.SetCookie(middleware.SessionCookie, signed, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, authResponse{
		Success: true,
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Token:   signed,
	})
}

package httptransport

import (
	"log/slog"

	"github.com/altynbekov/streamflix/internal/repository"
	"github.com/altynbekov/streamflix/internal/token"
	"github.com/altynbekov/streamflix/internal/transport/http/handler"
	"github.com/altynbekov/streamflix/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	catalogHandler *handler.CatalogHandler,
	codec *token.Codec,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(codec, userRepo, logger)

	auth := r.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authMW, authHandler.Logout)

	// Protected profile routes
	users := r.Group("/api/users", authMW)
	users.PUT("/favorites", profileHandler.UpdateFavorites)
	users.PUT("/last-watched", profileHandler.UpdateLastWatched)

	// Public catalog proxy; the metadata payloads pass through unchanged.
	cat := r.Group("/api/catalog")
	cat.GET("/trending/:media/:window", catalogHandler.Trending)
	cat.GET("/popular/:media", catalogHandler.Popular)
	cat.GET("/details/:media/:id", catalogHandler.Details)
	cat.GET("/search", catalogHandler.Search)

	return r
}

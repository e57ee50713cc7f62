package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/altynbekov/streamflix/internal/catalog"
	"github.com/gin-gonic/gin"
)

// catalogClient is the slice of catalog.Client the handlers need.
type catalogClient interface {
	Trending(ctx context.Context, media, window string) (json.RawMessage, error)
	Popular(ctx context.Context, media string, page int) (json.RawMessage, error)
	Details(ctx context.Context, media, id string) (json.RawMessage, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// CatalogHandler relays metadata API responses verbatim; the payload
// schema belongs to the upstream, not to this service.
type CatalogHandler struct {
	catalog catalogClient
	logger  *slog.Logger
}

func NewCatalogHandler(client catalogClient, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: client, logger: logger.With("component", "catalog_handler")}
}

// GET /api/catalog/trending/:media/:window
func (h *CatalogHandler) Trending(c *gin.Context) {
	payload, err := h.catalog.Trending(c.Request.Context(), c.Param("media"), c.Param("window"))
	h.relay(c, payload, err)
}

// GET /api/catalog/popular/:media
func (h *CatalogHandler) Popular(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	payload, err := h.catalog.Popular(c.Request.Context(), c.Param("media"), page)
	h.relay(c, payload, err)
}

// GET /api/catalog/:media/:id
func (h *CatalogHandler) Details(c *gin.Context) {
	payload, err := h.catalog.Details(c.Request.Context(), c.Param("media"), c.Param("id"))
	h.relay(c, payload, err)
}

// GET /api/catalog/search?query=...
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}
	payload, err := h.catalog.Search(c.Request.Context(), query)
	h.relay(c, payload, err)
}

func (h *CatalogHandler) relay(c *gin.Context, payload json.RawMessage, err error) {
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownMedia):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errUnknownMedia})
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": errTitleNotFound})
		default:
			h.logger.Error("catalog fetch", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": errInternalServer})
		}
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

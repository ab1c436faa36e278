package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"songsearch/internal/search"
)

// Searcher runs song searches and reports backend health
type Searcher interface {
	Search(ctx context.Context, req search.SearchRequest) ([]byte, error)
	Health(ctx context.Context) error
}

// SongHandler handles song search requests
type SongHandler struct {
	searcher Searcher
}

// NewSongHandler creates a new song handler
func NewSongHandler(searcher Searcher) *SongHandler {
	return &SongHandler{searcher: searcher}
}

// SearchSongs handles GET /api/song/?search_term=&album=&genre=
func (h *SongHandler) SearchSongs(c *gin.Context) {
	req := search.SearchRequest{
		Term:  c.Query("search_term"),
		Album: optionalQuery(c, "album"),
		Genre: optionalQuery(c, "genre"),
	}

	payload, err := h.searcher.Search(c.Request.Context(), req)
	if err != nil {
		if search.IsBadRequest(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Search term is required",
			})
			return
		}

		slog.Error("Search failed", "term", req.Term, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search songs",
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Health handles GET /healthz
func (h *SongHandler) Health(c *gin.Context) {
	if err := h.searcher.Health(c.Request.Context()); err != nil {
		slog.Warn("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// optionalQuery returns nil when the parameter is absent, and a pointer to
// its value (possibly empty) when present.
func optionalQuery(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"songsearch/internal/config"
)

// NewRouter wires the API routes and middleware
func NewRouter(searcher Searcher, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogging())

	songHandler := NewSongHandler(searcher)

	router.GET("/healthz", songHandler.Health)

	api := router.Group("/api")
	if cfg.AuthEnabled {
		api.Use(JWTAuth(cfg.JWTSecret))
	}
	api.GET("/song/", songHandler.SearchSongs)

	return router
}

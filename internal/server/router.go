// Package server wires the HTTP surface.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kix-ai-bridge/internal/analyze"
	"kix-ai-bridge/internal/common/logger"
)

// NewRouter builds the gin engine with the analyze endpoint, the liveness
// endpoint, and the metrics endpoint.
func NewRouter(h *analyze.Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/azureopenai/tickets/:ticketId/analyze", h.Analyze)

	return router
}

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/auth"
)

// NewRouter assembles the HTTP engine: health check, the auth routes, and an
// optional protected group for collaborating record modules. Everything
// mounted through protected sits behind RequireSession.
func NewRouter(h *Handler, gate *auth.Gate, logger logging.Logger, protected func(*gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	if protected != nil {
		pg := api.Group("", RequireSession(gate))
		protected(pg)
	}

	return r
}

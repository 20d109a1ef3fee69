package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/auth"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an ID and logs method, path, status,
// and duration after the handler chain completes. Token values are never
// part of the log record.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	logger = logger.With("module", "web")

	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// RequireSession guards protected routes: the request proceeds only when the
// bearer token represents a valid session.
func RequireSession(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		if err := gate.Authorize(c.Request.Context(), token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

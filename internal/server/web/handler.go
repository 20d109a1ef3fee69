// Package web is the HTTP dispatcher: it binds request bodies, calls the
// auth subsystem, and maps sentinel errors to status codes. Each operation
// is a typed route; there is no string-tagged dispatch envelope.
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sdpatel1986/ng-dragon-medical/internal/common"
	"github.com/sdpatel1986/ng-dragon-medical/internal/logging"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/auth"
	"github.com/sdpatel1986/ng-dragon-medical/internal/server/credentials"
)

// Handler groups the auth HTTP handlers. Dependencies are injected via the
// constructor; there is no global state.
type Handler struct {
	credentials *credentials.Store
	tokens      *auth.Service
	logger      logging.Logger
}

func NewHandler(creds *credentials.Store, tokens *auth.Service, logger logging.Logger) *Handler {
	return &Handler{
		credentials: creds,
		tokens:      tokens,
		logger:      logger.With("module", "web"),
	}
}

// RegisterRoutes registers the auth routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/session", h.Session)
}

type credentialRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles user creation.
func (h *Handler) Register(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.CreateUser(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		default:
			h.logger.Error(c.Request.Context(), "register failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Login verifies a credential and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.credentials.Verify(ctx, req.Email, req.Password); err != nil {
		switch {
		// An unknown email and a wrong password answer identically, so the
		// response does not reveal whether the account exists.
		case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			h.logger.Error(ctx, "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	token, err := h.tokens.Issue(ctx, req.Email)
	if err != nil {
		h.logger.Error(ctx, "token issuance failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout revokes the bearer token's session.
func (h *Handler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, common.ErrMalformedToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed token"})
		case errors.Is(err, common.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		default:
			h.logger.Error(c.Request.Context(), "logout failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session answers whether the bearer token currently represents a valid
// session.
func (h *Handler) Session(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	logged, err := h.tokens.Validate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMalformedToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed token"})
		default:
			h.logger.Error(c.Request.Context(), "session check failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged": logged})
}

const bearerPrefix = "Bearer "

// bearerToken extracts the token from the Authorization header, writing the
// error response itself when the header is absent or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		return "", false
	}
	if !strings.HasPrefix(header, bearerPrefix) || len(header) == len(bearerPrefix) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
		return "", false
	}
	return header[len(bearerPrefix):], true
}

package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"takjil_scheduler/internal/middleware"
	"takjil_scheduler/internal/service"
	"takjil_scheduler/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles admin session requests
type AuthHandler struct {
	service    service.AuthService
	trustProxy bool
	logger     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. trustProxy enables reading
// X-Forwarded-Proto to decide the cookie's Secure attribute behind a TLS
// terminating proxy.
func NewAuthHandler(s service.AuthService, trustProxy bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, trustProxy: trustProxy, logger: logger}
}

// isSecureRequest reports whether the connection is confirmed HTTPS,
// directly or via a trusted proxy header.
func (h *AuthHandler) isSecureRequest(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	if h.trustProxy && strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		return true
	}
	return false
}

// Login checks the admin password and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Password == "" {
		respondError(c, http.StatusBadRequest, "Password harus diisi")
		return
	}

	token, expiresAt, err := h.service.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Password salah")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.isSecureRequest(c),
		Expires:  expiresAt,
	})
	respondMessage(c, http.StatusOK, "Login berhasil", nil)
}

// Me introspects the current session
func (h *AuthHandler) Me(c *gin.Context) {
	claimsVal, exists := c.Get(middleware.AuthClaimsKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	claims, ok := claimsVal.(*utils.SessionClaims)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var expiresAt *time.Time
	if claims.ExpiresAt != nil {
		expiresAt = &claims.ExpiresAt.Time
	}
	respondData(c, http.StatusOK, gin.H{
		"role":       claims.Role,
		"expires_at": expiresAt,
	})
}

// Logout clears the session cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.isSecureRequest(c),
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	respondMessage(c, http.StatusOK, "Logout berhasil", nil)
}

// RegisterAuthRoutes registers admin session routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, loginLimitMW, sessionMW gin.HandlerFunc) {
	adminGroup := rg.Group("/admin")
	{
		adminGroup.POST("/login", loginLimitMW, h.Login)
		adminGroup.GET("/me", sessionMW, h.Me)
		adminGroup.POST("/logout", sessionMW, h.Logout)
	}
}

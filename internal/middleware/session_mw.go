package middleware

import (
	"net/http"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName carries the signed admin session token.
	SessionCookieName = "admin_session"

	AuthRoleKey   = "authRole"
	AuthClaimsKey = "authClaims"
)

// AdminSessionMiddleware guards admin-only routes. Every failure mode
// (missing cookie, bad signature, expired token, wrong role) yields the same
// unauthorized response so callers learn nothing about which check failed.
func AdminSessionMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	unauthorized := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized",
		})
	}

	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			unauthorized(c)
			return
		}

		claims, err := jwtUtil.ValidateToken(cookie)
		if err != nil {
			unauthorized(c)
			return
		}
		if claims.Role != model.RoleAdmin {
			unauthorized(c)
			return
		}

		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"communehub/internal/pkg"
	"communehub/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware validates the bearer token against the redis token store
// and injects the user ID into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		tokens := &redis.TokenRepository{}
		origin, err := tokens.Get(c.Request.Context(), claims.UserID)
		if err != nil || origin != bearerToken(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account logged in elsewhere"})
			c.Abort()
			return
		}
		_ = tokens.Extend(c.Request.Context(), claims.UserID)

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth injects the user ID when a valid token is present but lets
// anonymous requests through. Used by the trending feed, which serves
// unpersonalized results to anonymous viewers.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c); ok {
			c.Set(ContextUserIDKey, claims.UserID)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func parseBearer(c *gin.Context) (*pkg.Claims, bool) {
	token := bearerToken(c)
	if token == "" {
		return nil, false
	}
	claims, err := pkg.ParseAccess(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

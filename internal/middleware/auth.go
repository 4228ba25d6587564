package middleware

import (
	"strings"

	"rewear-be/internal/user"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "auth_user_id"
	EmailKey  = "auth_email"
)

// Auth parses a bearer token when present and stashes the caller's
// identity in the gin context. Invalid or missing tokens leave the
// request anonymous; handlers that need an identity enforce it.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated caller's id, or false when the
// request carries no valid token.
func UserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// ResolveUserID prefers the token identity over a client-supplied id,
// so callers cannot act on another user's behalf just by sending a
// different id in the payload.
func ResolveUserID(c *gin.Context, claimed int) int {
	if id, ok := UserID(c); ok {
		return id
	}
	return claimed
}

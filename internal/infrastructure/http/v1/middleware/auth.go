package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
)

// Authenticator validates console session tokens.
type Authenticator interface {
	Authenticate(tokenString string) (*appctx.Session, error)
}

// Auth middleware validates the session token and populates the request session.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		sess, err := auth.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx := appctx.WithSession(c.Request.Context(), sess)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", sess.UserID)
		c.Set("store_id", sess.StoreID)

		c.Next()
	}
}

// RequireStore rejects sessions that are not scoped to a store.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := appctx.GetSession(c.Request.Context())
		if sess == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if sess.StoreID == "" {
			_ = c.Error(apperror.NewForbidden("no active store for this session"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}

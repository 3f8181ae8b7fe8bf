package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/domain/user"
)

const CtxUser = "requestUser"

// RequireUser rejects requests without a valid session token and puts
// the authenticated user into the gin context.
func RequireUser(auth ports.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), header)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUser, u)
		c.Next()
	}
}

// OptionalUser authenticates when an Authorization header is present
// and lets anonymous requests through. A header that fails to verify
// is still rejected: a bad token is never the same as no token.
func OptionalUser(auth ports.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), header)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUser, u)
		c.Next()
	}
}

// UserFromContext returns the authenticated user, or nil for an
// anonymous request.
func UserFromContext(c *gin.Context) *user.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}

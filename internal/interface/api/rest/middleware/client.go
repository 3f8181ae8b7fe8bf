package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/domain/client"
)

const (
	CtxClient         = "requestClient"
	ClientTokenHeader = "X-Client-Token"
)

// RequireClient verifies the opaque client token carried in the
// X-Client-Token header and puts the client into the gin context.
func RequireClient(clients ports.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetHeader(ClientTokenHeader)
		if tok == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing client token"},
			)
			return
		}

		cl, err := clients.VerifyToken(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid client token"},
			)
			return
		}

		c.Set(CtxClient, cl)
		c.Next()
	}
}

// ClientFromContext returns the verified client, or nil.
func ClientFromContext(c *gin.Context) *client.Client {
	if v, ok := c.Get(CtxClient); ok {
		if cl, ok := v.(*client.Client); ok {
			return cl
		}
	}
	return nil
}

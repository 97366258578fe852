package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/QuentinDoniczka/SeriousGameBack/pkg/helpers"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// Auth validates the Authorization bearer token and injects the caller's
// identity into the Gin context. Validity is decided by signature and
// expiration alone; there is no server-side session to consult.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNameKey, claims.Username)
		c.Next()
	}
}

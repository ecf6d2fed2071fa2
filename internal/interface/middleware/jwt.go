package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/pkg/helpers"
	"github.com/classtalk/classtalk-api/pkg/response"
)

const CtxUserIDKey = "userID"

// JWTAuth is the authorization gate: it reads the session cookie, verifies
// the token and injects the resolved user ID into the Gin context. No
// handler behind it trusts a caller-supplied identity field. Tokens are
// stateless bearer credentials; absence of the cookie is the same failure
// as an invalid token.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "not authorized, login again", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "not authorized, login again", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

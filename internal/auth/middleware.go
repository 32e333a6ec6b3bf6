package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth.principal"

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	UserID int64
	Role   string
}

// Middleware enforces a Bearer token on the route group. On success the
// principal is stored in the request context for handlers.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		claims, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// PrincipalFrom retrieves the authenticated principal, if any.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

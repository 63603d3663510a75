package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/travelbuddy/journal-api/pkg/helpers"
	"github.com/travelbuddy/journal-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth extracts a bearer token from the Authorization header, verifies it and
// injects the resolved user id into the Gin context. A missing or malformed
// header is rejected before the token service is consulted. Verification
// failures are reported uniformly; the caller cannot tell an expired token
// from a forged one.
func Auth(jwt *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

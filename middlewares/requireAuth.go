package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	// TokenCookie carries the session token set at login.
	TokenCookie = "token"
	userKey     = "user"
)

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth accepts the session token from the cookie or, failing that, a
// bearer header, and stores the caller's principal on the context.
func RequireAuth(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromRequest(ctx)
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(userKey, claims.Principal())
		ctx.Next()
	}
}

// CurrentUser returns the principal stored by RequireAuth.
func CurrentUser(ctx *gin.Context) (models.Principal, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

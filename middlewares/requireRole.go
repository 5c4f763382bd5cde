package middlewares

import (
	"net/http"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/gin-gonic/gin"
)

func RequireRole(role models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if principal.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: " + string(role) + " account required"})
			return
		}

		ctx.Next()
	}
}

func RequireBuyer() gin.HandlerFunc {
	return RequireRole(models.RoleBuyer)
}

func RequireSeller() gin.HandlerFunc {
	return RequireRole(models.RoleSeller)
}

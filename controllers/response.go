package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/farmkart-api/middlewares"
	"github.com/Kariqs/farmkart-api/models"
	"github.com/gin-gonic/gin"
)

// Standard response messages
const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgNotAuthenticated    = "Not authenticated"
	msgInvalidID           = "invalid id"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError answers with the status matching err. Server-side
// failures are logged and their details kept out of the response.
func handleServiceError(ctx *gin.Context, err error, message string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Println(message+":", err)
		sendErrorResponse(ctx, status, msgInternalServerError)
		return
	}
	respondWithError(ctx, status, message, err)
}

func currentUser(ctx *gin.Context) (models.Principal, bool) {
	principal, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
	}
	return principal, ok
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

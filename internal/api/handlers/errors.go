package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/api/middleware"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const (
	msgInternal       = "Something went wrong. Please try again."
	msgSessionExpired = "Your session has expired. Please log in again."
)

// respondError writes the blocking alert for err
func respondError(c *gin.Context, auth middleware.ReturnRecorder, logger *zap.Logger, err error) {
	status, body := errorResponse(c, auth, logger, err)
	c.JSON(status, body)
}

// errorResponse maps err to a status and body. A rejected session is handed to the
// login flow so it can resume where the step stopped.
func errorResponse(c *gin.Context, auth middleware.ReturnRecorder, logger *zap.Logger, err error) (int, gin.H) {
	_ = c.Error(err)

	switch e := err.(type) {
	case *errors.ErrValidation:
		return http.StatusUnprocessableEntity, gin.H{"error": e.Error(), "fields": e.Fields}
	case *errors.ErrPrecondition:
		return http.StatusConflict, gin.H{"error": e.Error()}
	case *errors.ErrInvalidStateTransition:
		return http.StatusConflict, gin.H{"error": e.Error()}
	case *errors.ErrReauthRequired:
		if auth != nil {
			auth.SetReturnTo(e.Return)
		}
		return http.StatusUnauthorized, gin.H{
			"error":    msgSessionExpired,
			"redirect": nav.LoginPath,
			"from":     e.Return,
		}
	case *errors.ErrNotFound:
		return http.StatusNotFound, gin.H{"error": e.Error()}
	case *errors.ErrUpstream:
		return http.StatusBadGateway, gin.H{"error": e.Message}
	default:
		logger.Error("Unhandled request error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return http.StatusInternalServerError, gin.H{"error": msgInternal}
	}
}

// badRequest answers a request whose body could not be bound
func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

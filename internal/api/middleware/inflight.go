package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/lifecycle"
)

// ActionKey names a route for the in-flight lock
func ActionKey(method, path string) string {
	return method + " " + path
}

// InFlight refuses a step request while the same step is still pending.
// The outcome recorded is the first error attached to the context, or the response status.
func InFlight(tracker *lifecycle.Tracker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ActionKey(c.Request.Method, c.FullPath())
		ctx, finish, err := tracker.Begin(c.Request.Context(), key)
		if errors.Is(err, lifecycle.ErrPending) {
			logger.Info("Rejected duplicate submission", zap.String("action", key))
			c.JSON(http.StatusConflict, gin.H{"error": "This request is already being processed"})
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				finish(fmt.Errorf("panic: %v", r))
				panic(r)
			}
		}()
		c.Next()

		switch {
		case len(c.Errors) > 0:
			finish(c.Errors.Last().Err)
		case c.Writer.Status() >= http.StatusBadRequest:
			finish(errors.New(http.StatusText(c.Writer.Status())))
		default:
			finish(nil)
		}
	}
}

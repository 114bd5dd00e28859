package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/api/middleware"
	"github.com/realahmed45/future-bali-frontend/internal/lifecycle"
	"github.com/realahmed45/future-bali-frontend/internal/service"
	"github.com/realahmed45/future-bali-frontend/internal/session"
)

// HandleGetLogin handles GET /login
func HandleGetLogin(auth service.AuthFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, auth.Snapshot())
	}
}

// HandleSubmitEmail handles POST /login/email
func HandleSubmitEmail(auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		view, err := auth.SubmitEmail(c.Request.Context(), req.Email)
		if err != nil {
			respondAuthError(c, logger, view, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleVerifyCode handles POST /login/verify. Success redirects to where login was required.
func HandleVerifyCode(auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		dest, view, err := auth.SubmitCode(c.Request.Context(), req.OTP)
		if err != nil {
			respondAuthError(c, logger, view, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"redirect": dest.Path,
			"state":    dest.State,
			"auth":     view,
		})
	}
}

// respondAuthError keeps the auth view alongside the alert so the form can show field errors
func respondAuthError(c *gin.Context, logger *zap.Logger, view service.AuthView, err error) {
	status, body := errorResponse(c, nil, logger, err)
	body["auth"] = view
	c.JSON(status, body)
}

// HandleCancelLogin handles POST /login/cancel. Any code request still in flight is aborted.
func HandleCancelLogin(auth service.AuthFlow, tracker *lifecycle.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tracker.Cancel(middleware.ActionKey(http.MethodPost, "/login/email"))
		tracker.Cancel(middleware.ActionKey(http.MethodPost, "/login/verify"))
		dest := auth.Cancel()
		c.JSON(http.StatusOK, gin.H{"redirect": dest.Path})
	}
}

// HandleGetSession handles GET /session for the header
func HandleGetSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loggedIn := sess.Token()
		resp := gin.H{"loggedIn": loggedIn}
		if email := sess.User(); loggedIn && email != "" {
			resp["email"] = email
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleLogout handles POST /logout
func HandleLogout(sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sess.Logout(); err != nil {
			logger.Error("Failed to log out", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
			return
		}
		c.JSON(http.StatusOK, gin.H{"loggedIn": false, "redirect": "/"})
	}
}

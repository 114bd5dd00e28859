package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// HandleGetPackage handles GET /package1
func HandleGetPackage(checkout service.Checkout, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := resumedState(c, checkout, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, checkout.PackageView(state))
	}
}

// HandleToggleAddOn handles POST /package1/addons/toggle
func HandleToggleAddOn(checkout service.Checkout, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ToggleAddOnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		view, err := checkout.ToggleAddOn(req.State, req.Room)
		if err != nil {
			respondError(c, nil, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleProceedFromPackage handles POST /package1/proceed
func HandleProceedFromPackage(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := checkout.ProceedFromPackage(c.Request.Context(), req.State)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

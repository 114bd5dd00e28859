package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// HandleCartView handles POST /package1-cart. An empty body loads the stored selection.
func HandleCartView(checkout service.Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StateRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, checkout.CartView(c.Request.Context(), req.State))
	}
}

// HandleRemoveAddOn handles POST /package1-cart/remove-addon
func HandleRemoveAddOn(checkout service.Checkout, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RemoveAddOnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		view, err := checkout.RemoveAddOn(req.State, *req.Index)
		if err != nil {
			respondError(c, nil, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleCartCheckout handles POST /package1-cart/checkout
func HandleCartCheckout(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := checkout.Checkout(c.Request.Context(), req.State)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// HandlePlaceOrder handles POST /place-order
func HandlePlaceOrder(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := checkout.PlaceOrder(c.Request.Context(), req.State, req.BillingDetails)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

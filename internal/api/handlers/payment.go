package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// HandlePaymentView handles POST /payment
func HandlePaymentView(checkout service.Checkout, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		view, err := checkout.PaymentView(c.Request.Context(), req.State)
		if err != nil {
			respondError(c, nil, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandlePay handles POST /payment/pay
func HandlePay(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		receipt, err := checkout.Pay(c.Request.Context(), req.State, req.PaymentType)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, receipt)
	}
}

// HandleClosePayment handles POST /payment/close
func HandleClosePayment(checkout service.Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CloseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, checkout.ClosePayment(req.Receipt))
	}
}

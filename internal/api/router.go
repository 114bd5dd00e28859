package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/api/handlers"
	"github.com/realahmed45/future-bali-frontend/internal/api/middleware"
	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/lifecycle"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/notify"
	"github.com/realahmed45/future-bali-frontend/internal/service"
	"github.com/realahmed45/future-bali-frontend/internal/session"
)

// Deps is everything the HTTP surface calls into
type Deps struct {
	Config   *config.Config
	Session  *session.Session
	Graph    *nav.Graph
	Auth     service.AuthFlow
	Checkout service.Checkout
	Notifier *notify.Center
	Tracker  *lifecycle.Tracker
	Logger   *zap.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(d Deps) *gin.Engine {
	if d.Config != nil && d.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.MaxMultipartMemory = middleware.MaxMultipartMemory

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	guard := nav.NewGuard(d.Graph, d.Session)
	protect := func(page string) gin.HandlerFunc {
		return middleware.RequireSession(page, guard, d.Auth, logger)
	}
	inFlight := middleware.InFlight(d.Tracker, logger)

	router.GET("/", handlers.HandleRoot(d.Graph))
	router.GET("/health", handlers.HandleHealth())

	// Session and login
	router.GET("/session", handlers.HandleGetSession(d.Session))
	router.POST("/logout", handlers.HandleLogout(d.Session, logger))
	login := router.Group(nav.LoginPath)
	{
		login.GET("", handlers.HandleGetLogin(d.Auth))
		login.POST("/email", inFlight, handlers.HandleSubmitEmail(d.Auth, logger))
		login.POST("/verify", inFlight, handlers.HandleVerifyCode(d.Auth, logger))
		login.POST("/cancel", handlers.HandleCancelLogin(d.Auth, d.Tracker))
	}

	router.GET("/notifications", handlers.HandleListNotifications(d.Notifier))
	router.DELETE("/notifications/:id", handlers.HandleDismissNotification(d.Notifier))
	router.GET("/drafts/:id", handlers.HandleGetDraft(d.Checkout, logger))

	// Checkout pages
	pkg := router.Group(nav.PackagePath, protect(nav.PackagePath))
	{
		pkg.GET("", handlers.HandleGetPackage(d.Checkout, logger))
		pkg.POST("/addons/toggle", handlers.HandleToggleAddOn(d.Checkout, logger))
		pkg.POST("/proceed", inFlight, handlers.HandleProceedFromPackage(d.Checkout, d.Auth, logger))
	}

	cart := router.Group(nav.CartPath, protect(nav.CartPath))
	{
		cart.POST("", handlers.HandleCartView(d.Checkout))
		cart.POST("/remove-addon", handlers.HandleRemoveAddOn(d.Checkout, logger))
		cart.POST("/checkout", inFlight, handlers.HandleCartCheckout(d.Checkout, d.Auth, logger))
	}

	review := router.Group(nav.ReviewOrderPath, protect(nav.ReviewOrderPath))
	{
		review.POST("", inFlight, handlers.HandleCreateOrder(d.Checkout, d.Auth, logger))
	}

	userInfo := router.Group(nav.UserInfoPath, protect(nav.UserInfoPath))
	{
		userInfo.POST("", inFlight, handlers.HandleSaveUserInfo(d.Checkout, d.Auth, logger))
		userInfo.POST("/people/add", handlers.HandleAddPerson())
		userInfo.POST("/people/remove", handlers.HandleRemovePerson())
	}

	inheritance := router.Group(nav.InheritancePath, protect(nav.InheritancePath))
	{
		inheritance.GET("", handlers.HandleContactsForm(d.Checkout, service.InheritanceContacts, logger))
		inheritance.POST("", inFlight, handlers.HandleSaveInheritance(d.Checkout, d.Auth, logger))
		inheritance.POST("/contacts/add", handlers.HandleAddContact())
		inheritance.POST("/contacts/remove", handlers.HandleRemoveContact())
	}

	emergency := router.Group(nav.EmergencyPath, protect(nav.EmergencyPath))
	{
		emergency.GET("", handlers.HandleContactsForm(d.Checkout, service.EmergencyContacts, logger))
		emergency.POST("", inFlight, handlers.HandleSaveEmergency(d.Checkout, d.Auth, logger))
		emergency.POST("/contacts/add", handlers.HandleAddContact())
		emergency.POST("/contacts/remove", handlers.HandleRemoveContact())
	}

	placeOrder := router.Group(nav.PlaceOrderPath, protect(nav.PlaceOrderPath))
	{
		placeOrder.POST("", inFlight, handlers.HandlePlaceOrder(d.Checkout, d.Auth, logger))
	}

	payment := router.Group(nav.PaymentPath, protect(nav.PaymentPath))
	{
		payment.POST("", handlers.HandlePaymentView(d.Checkout, logger))
		payment.POST("/pay", inFlight, handlers.HandlePay(d.Checkout, d.Auth, logger))
		payment.POST("/close", handlers.HandleClosePayment(d.Checkout))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("errors", len(c.Errors)),
		)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realahmed45/future-bali-frontend/internal/nav"
)

// HandleHealth handles GET /health
func HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleRoot handles GET / with the page graph so clients can discover the flow
func HandleRoot(graph *nav.Graph) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Future Bali booking",
			"routes":  graph.Routes(),
		})
	}
}

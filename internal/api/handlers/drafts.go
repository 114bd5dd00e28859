package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// DraftQueryParam lets a page GET resume a checkpointed draft
const DraftQueryParam = "draftId"

// HandleGetDraft handles GET /drafts/:id
func HandleGetDraft(checkout service.Checkout, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cp, err := checkout.Resume(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, nil, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"step":      cp.Step,
			"state":     cp.Draft,
			"updatedAt": cp.UpdatedAt,
		})
	}
}

// resumedState returns the checkpointed draft named by ?draftId=, or nil.
// ok is false when a response has already been written.
func resumedState(c *gin.Context, checkout service.Checkout, logger *zap.Logger) (*domain.OrderDraft, bool) {
	id := c.Query(DraftQueryParam)
	if id == "" {
		return nil, true
	}
	cp, err := checkout.Resume(c.Request.Context(), id)
	if err != nil {
		respondError(c, nil, logger, err)
		return nil, false
	}
	return &cp.Draft, true
}

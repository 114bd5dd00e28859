package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
)

// MaxMultipartMemory bounds the in-memory part of a parsed multipart form
const MaxMultipartMemory = 32 << 20

// ReturnRecorder remembers where login should resume
type ReturnRecorder interface {
	SetReturnTo(loc domain.Location)
}

// RequireSession guards every route of page. Without a session token the request is
// refused with the login redirect and the draft it carried.
func RequireSession(page string, guard *nav.Guard, auth ReturnRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := domain.Location{Path: page, State: peekState(c, logger)}
		decision := guard.Check(loc)
		if decision.Allowed {
			c.Next()
			return
		}

		auth.SetReturnTo(*decision.From)
		logger.Info("Guarded route refused without session", zap.String("path", page))
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Please log in to continue",
			"redirect": decision.Redirect,
			"from":     decision.From,
		})
		c.Abort()
	}
}

// peekState reads the carried draft without consuming the request body
func peekState(c *gin.Context, logger *zap.Logger) *domain.OrderDraft {
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return nil
	}

	var raw []byte
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(MaxMultipartMemory); err != nil {
			logger.Debug("Could not parse multipart form for guard", zap.Error(err))
			return nil
		}
		raw = []byte(c.Request.FormValue("state"))
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for guard", zap.Error(err))
			return nil
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var envelope struct {
			State json.RawMessage `json:"state"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil
		}
		raw = envelope.State
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var draft domain.OrderDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		logger.Debug("Ignoring unreadable carried state", zap.Error(err))
		return nil
	}
	return &draft
}

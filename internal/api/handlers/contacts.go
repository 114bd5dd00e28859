package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// HandleContactsForm handles GET of a contact page
func HandleContactsForm(checkout service.Checkout, selector func(domain.OrderDraft) []domain.Contact, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := resumedState(c, checkout, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, service.ContactsForm(state, selector))
	}
}

// HandleAddContact handles POST .../contacts/add
func HandleAddContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ContactsEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": req.Contacts.Add()})
	}
}

// HandleRemoveContact handles POST .../contacts/remove. Lists at two contacts are unchanged.
func HandleRemoveContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ContactsEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": req.Contacts.Remove(req.ID)})
	}
}

// HandleSaveInheritance handles POST /review_order1_3
func HandleSaveInheritance(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.InheritanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := checkout.SaveInheritance(c.Request.Context(), req.State, req.Contacts, req.SkipForm)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleSaveEmergency handles POST /Emergency-details (multipart).
// Fields: state and contacts as JSON, skipForm, files "<contact id>-idImage".
func HandleSaveEmergency(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := bindMultipart(c)
		if !ok {
			return
		}
		state, err := multipartState(form)
		if err != nil {
			badRequest(c, err)
			return
		}
		var contacts []domain.Contact
		if err := multipartJSON(form, "contacts", &contacts); err != nil {
			badRequest(c, err)
			return
		}

		inputs := make([]service.ContactInput, len(contacts))
		for i, ct := range contacts {
			in := service.ContactInput{Contact: ct}
			if ct.ID != "" {
				if in.IDImage, err = document(form, ct.ID+"-idImage"); err != nil {
					badRequest(c, err)
					return
				}
			}
			inputs[i] = in
		}

		res, err := checkout.SaveEmergency(c.Request.Context(), state, inputs, multipartBool(form, "skipForm"))
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

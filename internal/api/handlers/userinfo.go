package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/service"
)

// PeopleEditRequest adds a signer, or removes the one at Index
type PeopleEditRequest struct {
	People []domain.Person `json:"people"`
	Index  int             `json:"index"`
}

// HandleSaveUserInfo handles POST /review_order1_2 (multipart).
// Fields: state and people as JSON, files "<index>-frontImage" and "<index>-backImage".
func HandleSaveUserInfo(checkout service.Checkout, auth service.AuthFlow, logger *zap.Logger) gin.HandlerFunc {
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
		var people []domain.Person
		if err := multipartJSON(form, "people", &people); err != nil {
			badRequest(c, err)
			return
		}

		inputs := make([]service.PersonInput, len(people))
		for i, p := range people {
			in := service.PersonInput{Person: p}
			if in.Front, err = document(form, strconv.Itoa(i)+"-frontImage"); err != nil {
				badRequest(c, err)
				return
			}
			if in.Back, err = document(form, strconv.Itoa(i)+"-backImage"); err != nil {
				badRequest(c, err)
				return
			}
			inputs[i] = in
		}

		res, err := checkout.SaveUserInfo(c.Request.Context(), state, inputs)
		if err != nil {
			respondError(c, auth, logger, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleAddPerson handles POST /review_order1_2/people/add
func HandleAddPerson() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PeopleEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		people := append(append([]domain.Person{}, req.People...), domain.Person{})
		c.JSON(http.StatusOK, gin.H{"people": people})
	}
}

// HandleRemovePerson handles POST /review_order1_2/people/remove. The last signer stays.
func HandleRemovePerson() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PeopleEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"people": domain.RemovePerson(req.People, req.Index)})
	}
}

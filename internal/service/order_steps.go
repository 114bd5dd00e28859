package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/validate"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const (
	msgCartIDMissing       = "Cart ID is missing. Please go back and try again."
	msgOrderCreateFailed   = "Failed to create order. Please try again."
	msgUserInfoSaveFailed  = "Failed to save information. Please try again."
	msgAtLeastOnePerson    = "At least one person is required"
	msgFrontImageRequired  = "Front image is required"
	msgBackImageRequired   = "Back image is required"
	userInfoSavedMessage   = "Your information has been saved."
	orderCreatedMessage    = "Your order has been created."
	placeOrderSavedMessage = "Your order has been placed."
)

// CreateOrder turns the saved cart into an order
func (s *checkoutService) CreateOrder(ctx context.Context, state *domain.OrderDraft) (*StepResult, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if draft.CartID == "" {
		return nil, &errors.ErrPrecondition{Message: msgCartIDMissing}
	}
	if err := s.requireSession(nav.ReviewOrderPath, draft); err != nil {
		return nil, err
	}

	orderID, err := s.backend.CreateOrder(ctx, backend.CreateOrderRequest{
		CartID:         draft.CartID,
		BasePackage:    draft.BasePackage,
		SelectedAddOns: draft.SelectedAddOns,
		TotalAmount:    draft.TotalCost(),
	}, backend.WithTimeout(s.timeouts.FormTimeout))
	if err != nil {
		return nil, s.stepFailed(ctx, domain.StepReviewOrder, nav.ReviewOrderPath, draft, err, msgOrderCreateFailed)
	}

	draft.OrderID = orderID
	s.logger.Info("Order created", zap.String("draft_id", draft.ID.String()), zap.String("order_id", orderID))
	s.notifier.Success(orderCreatedMessage)
	return s.advance(ctx, domain.StepReviewOrder, nav.ReviewOrderPath, draft)
}

// validatePeople checks every signer, keying errors by "<index>-<field>"
func validatePeople(people []PersonInput) validate.FieldErrors {
	errs := validate.FieldErrors{}
	if len(people) < domain.MinPeople {
		errs["people"] = msgAtLeastOnePerson
		return errs
	}
	for i, p := range people {
		errs.Merge(validate.Struct(p.Person).Prefixed(strconv.Itoa(i)))
		checkDocument(errs, strconv.Itoa(i), "frontImage", p.Front, p.Person.FrontImage, msgFrontImageRequired)
		checkDocument(errs, strconv.Itoa(i), "backImage", p.Back, p.Person.BackImage, msgBackImageRequired)
	}
	return errs
}

func checkDocument(errs validate.FieldErrors, entry, field string, doc *Document, existing *string, required string) {
	key := fieldKey(entry, field)
	if doc == nil {
		if existing == nil || *existing == "" {
			errs[key] = required
		}
		return
	}
	if msg := doc.problem(); msg != "" {
		errs[key] = msg
	}
}

// SaveUserInfo uploads identity documents, saves the signers and moves to inheritance.
// A failed upload leaves that image empty and does not stop the step.
func (s *checkoutService) SaveUserInfo(ctx context.Context, state *domain.OrderDraft, people []PersonInput) (*StepResult, error) {
	draft := carried(state)
	if errs := validatePeople(people); len(errs) > 0 {
		return nil, &errors.ErrValidation{Message: msgRequiredFields, Fields: errs}
	}
	if err := requireOrderID(draft); err != nil {
		return nil, err
	}
	if err := s.requireSession(nav.UserInfoPath, draft); err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, 2*len(people))
	for _, p := range people {
		docs = append(docs, p.Front, p.Back)
	}
	uploaded := s.uploadAll(ctx, docs)

	saved := make([]domain.Person, len(people))
	for i, p := range people {
		person := p.Person
		if p.Front != nil {
			person.FrontImage = uploaded[2*i]
		}
		if p.Back != nil {
			person.BackImage = uploaded[2*i+1]
		}
		saved[i] = person
	}

	if err := s.backend.SaveUserInfo(ctx, draft.OrderID, saved, backend.WithTimeout(s.timeouts.FormTimeout)); err != nil {
		return nil, s.stepFailed(ctx, domain.StepUserInfo, nav.UserInfoPath, draft, err, msgUserInfoSaveFailed)
	}

	draft.UserInfo = saved
	primary := saved[0]
	draft.PrimarySigner = &primary
	s.notifier.Success(userInfoSavedMessage)
	return s.advance(ctx, domain.StepUserInfo, nav.UserInfoPath, draft)
}

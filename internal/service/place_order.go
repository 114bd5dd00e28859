package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/validate"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const msgFinalizeFailed = "Failed to finalize order. Please try again."

// PlaceOrder submits billing details and moves to payment
func (s *checkoutService) PlaceOrder(ctx context.Context, state *domain.OrderDraft, billing domain.BillingDetails) (*StepResult, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if errs := validate.Struct(billing); len(errs) > 0 {
		return nil, &errors.ErrValidation{Message: msgRequiredCorrect, Fields: errs}
	}
	if err := requireOrderID(draft); err != nil {
		return nil, err
	}
	if err := s.requireSession(nav.PlaceOrderPath, draft); err != nil {
		return nil, err
	}

	if err := s.backend.FinalizeOrder(ctx, draft.OrderID, billing, backend.WithTimeout(s.timeouts.FormTimeout)); err != nil {
		return nil, s.stepFailed(ctx, domain.StepPlaceOrder, nav.PlaceOrderPath, draft, err, msgFinalizeFailed)
	}

	draft.BillingDetails = &billing
	s.logger.Info("Order finalized", zap.String("draft_id", draft.ID.String()), zap.String("order_id", draft.OrderID))
	s.notifier.Success(placeOrderSavedMessage)
	return s.advance(ctx, domain.StepPlaceOrder, nav.PlaceOrderPath, draft)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const msgCartSaveFailed = "Failed to save cart. Please try again."

// CartView loads the cart from the carried draft, then the local fallback, then defaults,
// and checks the session against the backend. A token the backend refuses is dropped.
func (s *checkoutService) CartView(ctx context.Context, state *domain.OrderDraft) CartView {
	view := CartView{Source: CartSourceNavigation}

	switch {
	case state != nil && state.BasePackage != nil:
		view.State = carried(state)
	default:
		var stored domain.OrderDraft
		found, err := s.store.GetJSON(storage.KeyPackageSelection, &stored)
		if err != nil {
			s.logger.Warn("Ignoring unreadable package selection", zap.Error(err))
		}
		if found && err == nil {
			view.Source = CartSourceFallback
			view.State = carried(&stored)
		} else {
			view.Source = CartSourceDefault
			view.State = carried(state)
			view.State.SelectedAddOns = []domain.AddOn{}
		}
	}
	view.State = view.State.WithDefaults(domain.DefaultCartPackage())

	if _, ok := s.session.Token(); ok {
		email, err := s.backend.VerifyToken(ctx, backend.WithTimeout(s.timeouts.VerifyTimeout))
		switch {
		case err != nil && ctx.Err() != nil:
			s.logger.Debug("Cart session check abandoned", zap.Error(err))
		case err != nil:
			s.logger.Info("Cart session check failed, logging out", zap.Error(err))
			if lerr := s.session.Logout(); lerr != nil {
				s.logger.Warn("Failed to clear rejected session", zap.Error(lerr))
			}
		default:
			view.Authenticated = true
			view.Email = email
			s.session.SetUser(email)
		}
	}

	view.AddOnTotal = formatAmount(view.State.AddOnTotal())
	view.Total = formatAmount(view.State.TotalCost())
	return view
}

// RemoveAddOn drops the add-on at index and rewrites the local fallback copy
func (s *checkoutService) RemoveAddOn(state *domain.OrderDraft, index int) (CartView, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if err := draft.RemoveAddOnAt(index); err != nil {
		return CartView{}, &errors.ErrValidation{Message: err.Error(), Fields: map[string]string{"index": err.Error()}}
	}
	if err := s.store.SetJSON(storage.KeyPackageSelection, draft); err != nil {
		s.logger.Warn("Failed to rewrite package selection", zap.Error(err))
	}
	return CartView{
		State:      draft,
		Source:     CartSourceNavigation,
		AddOnTotal: formatAmount(draft.AddOnTotal()),
		Total:      formatAmount(draft.TotalCost()),
	}, nil
}

// Checkout saves the cart under the verified account and moves to order review
func (s *checkoutService) Checkout(ctx context.Context, state *domain.OrderDraft) (*StepResult, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if err := s.requireSession(nav.CartPath, draft); err != nil {
		return nil, err
	}

	email, err := s.backend.VerifyToken(ctx, backend.WithTimeout(s.timeouts.VerifyTimeout))
	if err != nil {
		return nil, s.cartFailed(ctx, draft, err)
	}
	s.session.SetUser(email)

	cartID, err := s.backend.SaveCart(ctx, backend.SaveCartRequest{
		Email:          email,
		BasePackage:    draft.BasePackage,
		SelectedAddOns: draft.SelectedAddOns,
		TotalAmount:    draft.TotalCost(),
	}, backend.WithTimeout(s.timeouts.FormTimeout))
	if err != nil {
		return nil, s.cartFailed(ctx, draft, err)
	}

	draft.CartID = cartID
	s.logger.Info("Cart checked out", zap.String("draft_id", draft.ID.String()), zap.String("cart_id", cartID))
	return s.advance(ctx, domain.StepCart, nav.CartPath, draft)
}

// cartFailed hides server messages behind the single cart failure message
func (s *checkoutService) cartFailed(ctx context.Context, draft domain.OrderDraft, err error) error {
	err = s.stepFailed(ctx, domain.StepCart, nav.CartPath, draft, err, msgCartSaveFailed)
	if up, ok := err.(*errors.ErrUpstream); ok {
		up.Message = msgCartSaveFailed
	}
	return err
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

// PackageView renders the package page for the carried draft, starting a new one if needed
func (s *checkoutService) PackageView(state *domain.OrderDraft) PackageView {
	pkg := domain.Package1()
	var draft domain.OrderDraft
	if state == nil {
		draft = domain.NewDraft(pkg.Base)
	} else {
		draft = carried(state).WithDefaults(pkg.Base)
	}
	return PackageView{Package: pkg, State: draft, Total: formatAmount(draft.TotalCost())}
}

// ToggleAddOn selects or deselects the catalog add-on for room
func (s *checkoutService) ToggleAddOn(state *domain.OrderDraft, room string) (PackageView, error) {
	pkg := domain.Package1()
	offer, ok := pkg.FindOffer(room)
	if !ok {
		msg := fmt.Sprintf("Unknown add-on room %q", room)
		return PackageView{}, &errors.ErrValidation{Message: msg, Fields: map[string]string{"room": msg}}
	}
	view := s.PackageView(state)
	view.State.ToggleAddOn(offer)
	view.Total = formatAmount(view.State.TotalCost())
	return view, nil
}

// ProceedFromPackage saves the selection as a cart and moves to the cart page.
// If the save fails the selection is kept locally and the customer still moves on.
func (s *checkoutService) ProceedFromPackage(ctx context.Context, state *domain.OrderDraft) (*StepResult, error) {
	draft := carried(state)
	base := domain.Package1().Base
	draft.BasePackage = &base
	if draft.SelectedAddOns == nil {
		draft.SelectedAddOns = []domain.AddOn{}
	}

	if _, ok := s.session.Token(); !ok {
		return nil, reauth(nav.CartPath, draft)
	}

	cartID, err := s.backend.SaveCart(ctx, backend.SaveCartRequest{
		BasePackage:    draft.BasePackage,
		SelectedAddOns: draft.SelectedAddOns,
		TotalAmount:    draft.TotalCost(),
	}, backend.WithTimeout(s.timeouts.AuthTimeout))
	if err != nil {
		s.logger.Warn("Cart save failed, keeping selection locally", zap.String("draft_id", draft.ID.String()), zap.Error(err))
		if serr := s.store.SetJSON(storage.KeyPackageSelection, draft); serr != nil {
			s.logger.Error("Failed to store package selection", zap.Error(serr))
		}
		return s.advance(ctx, domain.StepPackage, nav.PackagePath, draft)
	}

	draft.CartID = cartID
	s.logger.Info("Cart saved", zap.String("draft_id", draft.ID.String()), zap.String("cart_id", cartID))
	return s.advance(ctx, domain.StepPackage, nav.PackagePath, draft)
}

package service

import (
	"context"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
)

// AuthFlow is the login state machine behind /login
type AuthFlow interface {
	SubmitEmail(ctx context.Context, email string) (AuthView, error)
	SubmitCode(ctx context.Context, code string) (domain.Location, AuthView, error)
	Cancel() domain.Location
	SetReturnTo(loc domain.Location)
	Snapshot() AuthView
}

// Checkout runs the checkout pages from package selection to payment
type Checkout interface {
	PackageView(state *domain.OrderDraft) PackageView
	ToggleAddOn(state *domain.OrderDraft, room string) (PackageView, error)
	ProceedFromPackage(ctx context.Context, state *domain.OrderDraft) (*StepResult, error)

	CartView(ctx context.Context, state *domain.OrderDraft) CartView
	RemoveAddOn(state *domain.OrderDraft, index int) (CartView, error)
	Checkout(ctx context.Context, state *domain.OrderDraft) (*StepResult, error)

	CreateOrder(ctx context.Context, state *domain.OrderDraft) (*StepResult, error)
	SaveUserInfo(ctx context.Context, state *domain.OrderDraft, people []PersonInput) (*StepResult, error)
	SaveInheritance(ctx context.Context, state *domain.OrderDraft, contacts []domain.Contact, skip bool) (*StepResult, error)
	SaveEmergency(ctx context.Context, state *domain.OrderDraft, contacts []ContactInput, skip bool) (*StepResult, error)
	PlaceOrder(ctx context.Context, state *domain.OrderDraft, billing domain.BillingDetails) (*StepResult, error)

	PaymentView(ctx context.Context, state *domain.OrderDraft) (PaymentView, error)
	Pay(ctx context.Context, state *domain.OrderDraft, paymentType domain.PaymentType) (*PaymentReceipt, error)
	ClosePayment(receipt PaymentReceipt) CloseResult

	Resume(ctx context.Context, id string) (*domain.DraftCheckpoint, error)
}

var (
	_ AuthFlow = (*authFlow)(nil)
	_ Checkout = (*checkoutService)(nil)
)

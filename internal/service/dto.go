package service

import "github.com/realahmed45/future-bali-frontend/internal/domain"

// StepResult is the forward navigation produced by a successful step
type StepResult struct {
	Redirect string            `json:"redirect"`
	State    domain.OrderDraft `json:"state"`
}

// StateRequest carries the draft a page was navigated to with
type StateRequest struct {
	State *domain.OrderDraft `json:"state"`
}

type ToggleAddOnRequest struct {
	State *domain.OrderDraft `json:"state"`
	Room  string             `json:"room" binding:"required"`
}

type RemoveAddOnRequest struct {
	State *domain.OrderDraft `json:"state" binding:"required"`
	Index *int               `json:"index" binding:"required"`
}

// ContactsEditRequest adds a contact, or removes the one with ID
type ContactsEditRequest struct {
	Contacts domain.ContactList `json:"contacts"`
	ID       string             `json:"id"`
}

type InheritanceRequest struct {
	State    *domain.OrderDraft `json:"state"`
	Contacts []domain.Contact   `json:"contacts"`
	SkipForm bool               `json:"skipForm"`
}

type PlaceOrderRequest struct {
	State          *domain.OrderDraft    `json:"state"`
	BillingDetails domain.BillingDetails `json:"billingDetails"`
}

type PayRequest struct {
	State       *domain.OrderDraft `json:"state"`
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=full deposit"`
}

type CloseRequest struct {
	Receipt PaymentReceipt `json:"receipt"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	OTP string `json:"otp"`
}

// PackageView is the package selection page
type PackageView struct {
	Package domain.Package    `json:"package"`
	State   domain.OrderDraft `json:"state"`
	Total   string            `json:"total"`
}

// Cart sources, in load order
const (
	CartSourceNavigation = "navigation"
	CartSourceFallback   = "fallback"
	CartSourceDefault    = "default"
)

// CartView is the cart page
type CartView struct {
	State         domain.OrderDraft `json:"state"`
	Source        string            `json:"source"`
	Authenticated bool              `json:"authenticated"`
	Email         string            `json:"email,omitempty"`
	AddOnTotal    string            `json:"addOnTotal"`
	Total         string            `json:"total"`
}

// ContactsView is an inheritance or emergency contact form
type ContactsView struct {
	Contacts domain.ContactList `json:"contacts"`
	State    domain.OrderDraft  `json:"state"`
}

// PersonInput is one signer as submitted, with any newly attached documents
type PersonInput struct {
	Person domain.Person
	Front  *Document
	Back   *Document
}

// ContactInput is one contact as submitted, with an optional id document
type ContactInput struct {
	Contact domain.Contact
	IDImage *Document
}

// PaymentView is the payment page
type PaymentView struct {
	State                  domain.OrderDraft `json:"state"`
	Order                  *domain.Order     `json:"order,omitempty"`
	FullAmount             float64           `json:"fullAmount"`
	DepositAmount          float64           `json:"depositAmount"`
	FullAmountFormatted    string            `json:"fullAmountFormatted"`
	DepositAmountFormatted string            `json:"depositAmountFormatted"`
}

// PaymentReceipt is shown in the payment success modal
type PaymentReceipt struct {
	OrderID     string                `json:"orderId"`
	Payment     domain.PaymentDetails `json:"paymentInfo"`
	DownloadURL string                `json:"downloadUrl"`
	EmailSent   bool                  `json:"emailSent"`
	Order       *domain.Order         `json:"orderData,omitempty"`
}

// HomeState is carried to the home page after payment
type HomeState struct {
	PaymentInfo *domain.PaymentDetails `json:"paymentInfo"`
	OrderData   *domain.Order          `json:"orderData"`
	OrderID     string                 `json:"orderId"`
}

type CloseResult struct {
	Redirect string    `json:"redirect"`
	State    HomeState `json:"state"`
}

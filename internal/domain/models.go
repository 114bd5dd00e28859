package domain

import (
	"time"

	"github.com/google/uuid"
)

// PackageDetail is one room line of a base package
type PackageDetail struct {
	Label string `json:"label"`
	Size  string `json:"size"`
}

// BasePackage is the package the customer starts from
type BasePackage struct {
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Duration    string          `json:"duration,omitempty"`
	Description string          `json:"description,omitempty"`
	Details     []PackageDetail `json:"details,omitempty"`
}

// AddOn is an optional room extension; unique per Room within a draft
type AddOn struct {
	Room  string  `json:"room"`
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Contact is an emergency or inheritance contact. ID is a local key, not a backend identity.
type Contact struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"notblank" label:"Name"`
	PhoneNumber string  `json:"phoneNumber" validate:"notblank" label:"Phone number"`
	PassportID  string  `json:"passportId,omitempty"`
	Percentage  string  `json:"percentage,omitempty"`
	IDImage     *string `json:"idImage,omitempty"`
}

// BillingDetails is collected on the place-order step
type BillingDetails struct {
	FirstName   string `json:"firstName" validate:"notblank" label:"First name"`
	LastName    string `json:"lastName" validate:"notblank" label:"Last name"`
	Phone       string `json:"phone" validate:"notblank" label:"Phone"`
	Email       string `json:"email" validate:"notblank,email_loose" label:"Email"`
	Country     string `json:"country" validate:"notblank" label:"Country"`
	Address     string `json:"address" validate:"notblank" label:"Address"`
	Notes       string `json:"notes"`
	SaveDetails bool   `json:"saveDetails"`
}

// Person is one contract signer. FrontImage and BackImage hold uploaded file URLs.
type Person struct {
	Name       string  `json:"name" validate:"notblank" label:"Name"`
	Phone      string  `json:"phone" validate:"notblank" label:"Phone number"`
	DOB        string  `json:"dob" validate:"notblank" label:"Date of birth"`
	Address    string  `json:"address" validate:"notblank" label:"Address"`
	Country    string  `json:"country" validate:"notblank" label:"Country"`
	Email      string  `json:"email" validate:"notblank,email_loose" label:"Email"`
	PassportID string  `json:"passportId" validate:"notblank" label:"Passport/ID number"`
	FrontImage *string `json:"frontImage,omitempty"`
	BackImage  *string `json:"backImage,omitempty"`
}

// OrderDraft is the record threaded through the checkout steps.
// It is not server-authoritative until the owning step's persistence call succeeds.
type OrderDraft struct {
	ID                  uuid.UUID       `json:"id"`
	BasePackage         *BasePackage    `json:"basePackage,omitempty"`
	SelectedAddOns      []AddOn         `json:"selectedAddOns"`
	CartID              string          `json:"cartId,omitempty"`
	OrderID             string          `json:"orderId,omitempty"`
	UserInfo            []Person        `json:"userInfo,omitempty"`
	PrimarySigner       *Person         `json:"primarySigner,omitempty"`
	InheritanceContacts []Contact       `json:"inheritanceContacts,omitempty"`
	EmergencyContacts   []Contact       `json:"emergencyContacts,omitempty"`
	BillingDetails      *BillingDetails `json:"billingDetails,omitempty"`
}

// Location is a navigation target: a route path plus the draft carried to it
type Location struct {
	Path  string      `json:"path"`
	State *OrderDraft `json:"state,omitempty"`
}

// Order is the backend's view of an order, fetched before payment
type Order struct {
	ID             string          `json:"_id"`
	BasePackage    *BasePackage    `json:"basePackage,omitempty"`
	SelectedAddOns []AddOn         `json:"selectedAddOns,omitempty"`
	TotalAmount    float64         `json:"totalAmount"`
	UserInfo       []Person        `json:"userInfo,omitempty"`
	UserEmail      string          `json:"userEmail,omitempty"`
	BillingDetails *BillingDetails `json:"billingDetails,omitempty"`
	Status         string          `json:"status,omitempty"`
}

// PaymentDetails describes a simulated payment sent along with contract generation
type PaymentDetails struct {
	TransactionID string      `json:"transactionId"`
	AmountPaid    float64     `json:"amountPaid"`
	PaymentType   PaymentType `json:"paymentType"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentDate   string      `json:"paymentDate"`
}

// DraftCheckpoint is the server-side copy of a draft after its last successful step
type DraftCheckpoint struct {
	DraftID   uuid.UUID
	Step      Step
	CartID    string
	OrderID   string
	Draft     OrderDraft
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DraftEvent is an audit record of a step outcome
type DraftEvent struct {
	ID        uuid.UUID
	DraftID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

package domain

// Step identifies a checkout page
type Step string

const (
	StepPackage     Step = "package"
	StepCart        Step = "cart"
	StepReviewOrder Step = "review_order"
	StepUserInfo    Step = "user_info"
	StepInheritance Step = "inheritance"
	StepEmergency   Step = "emergency"
	StepPlaceOrder  Step = "place_order"
	StepPayment     Step = "payment"
)

// IsValid checks if the step is known
func (s Step) IsValid() bool {
	switch s {
	case StepPackage,
		StepCart,
		StepReviewOrder,
		StepUserInfo,
		StepInheritance,
		StepEmergency,
		StepPlaceOrder,
		StepPayment:
		return true
	default:
		return false
	}
}

// AuthState is the state of the one-time-code login flow
type AuthState string

const (
	AuthStateEnteringEmail AuthState = "ENTERING_EMAIL"
	AuthStateOtpSent       AuthState = "OTP_SENT"
	AuthStateVerified      AuthState = "VERIFIED"
)

// CanTransitionTo checks if an auth flow transition is valid
func (s AuthState) CanTransitionTo(next AuthState) bool {
	switch s {
	case AuthStateEnteringEmail:
		return next == AuthStateOtpSent
	case AuthStateOtpSent:
		return next == AuthStateVerified || next == AuthStateOtpSent
	case AuthStateVerified:
		return false
	default:
		return false
	}
}

// PaymentType is the payment option chosen on the payment step
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "full"
	PaymentTypeDeposit PaymentType = "deposit"
)

// IsValid checks if the payment type is known
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeFull || p == PaymentTypeDeposit
}

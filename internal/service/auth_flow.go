package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/emailjs"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/session"
	"github.com/realahmed45/future-bali-frontend/internal/validate"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const otpLength = 6

const (
	msgEmailRequired  = "Please enter your email."
	msgEmailInvalid   = "Please enter a valid email address."
	msgRequestTimeout = "Request timeout. Please check your connection."
	msgOTPSendFailed  = "Failed to send OTP. Please try again."
	msgOTPInvalid     = "Please enter a valid 6-digit OTP"
	msgVerifyFailed   = "Verification failed. Please try again."
	msgLoginBusy      = "This request is already being processed"
	msgLoginCancelled = "Login was cancelled."
)

// AuthView is what the login page renders
type AuthView struct {
	State      domain.AuthState `json:"state"`
	Email      string           `json:"email,omitempty"`
	EmailError string           `json:"emailError,omitempty"`
	OTPError   string           `json:"otpError,omitempty"`
	ReturnTo   *domain.Location `json:"returnTo,omitempty"`
}

// authFlow is the email -> one-time code -> token login.
// The backend returns the code and this flow relays it to the customer by email.
type authFlow struct {
	mu       sync.Mutex
	state    domain.AuthState
	email    string
	emailErr string
	otpErr   string
	returnTo *domain.Location
	busy     bool   // a backend or email call is outstanding
	gen      uint64 // bumped by every call and every reset

	backend *backend.Client
	mailer  *emailjs.Client
	otpTmpl emailjs.Template
	session *session.Session
	timeout time.Duration
	logger  *zap.Logger
}

// NewAuthFlow creates the login state machine
func NewAuthFlow(
	client *backend.Client,
	mailer *emailjs.Client,
	otpTmpl emailjs.Template,
	sess *session.Session,
	timeout time.Duration,
	logger *zap.Logger,
) *authFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authFlow{
		state:   domain.AuthStateEnteringEmail,
		backend: client,
		mailer:  mailer,
		otpTmpl: otpTmpl,
		session: sess,
		timeout: timeout,
		logger:  logger,
	}
}

// SubmitEmail requests a code for email and mails it out.
// The lock is not held across the backend and email calls.
func (f *authFlow) SubmitEmail(ctx context.Context, email string) (AuthView, error) {
	f.mu.Lock()
	gen, view, err := f.startEmailLocked(email)
	timeout := f.timeout
	f.mu.Unlock()
	if err != nil {
		return view, err
	}

	otp, genErr := f.backend.GenerateOTP(ctx, email, backend.WithTimeout(timeout))
	var sendErr error
	if genErr == nil && f.current(gen) {
		sendErr = f.mailer.Send(ctx, f.otpTmpl, map[string]string{"to_email": email, "otp": otp})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.endLocked(gen) {
		return f.viewLocked(), &errors.ErrPrecondition{Message: msgLoginCancelled}
	}
	if genErr != nil {
		msg := backend.MessageOr(genErr, msgOTPSendFailed)
		if backend.IsTimeout(genErr) {
			msg = msgRequestTimeout
		}
		f.logger.Warn("Failed to generate OTP", zap.String("email", email), zap.Error(genErr))
		return f.failEmailLocked(&errors.ErrUpstream{Message: msg, Err: genErr})
	}
	if sendErr != nil {
		f.logger.Warn("Failed to deliver OTP email", zap.String("email", email), zap.Error(sendErr))
		return f.failEmailLocked(&errors.ErrUpstream{Message: msgOTPSendFailed, Err: sendErr})
	}

	f.state = domain.AuthStateOtpSent
	f.logger.Info("OTP sent", zap.String("email", email))
	return f.viewLocked(), nil
}

// startEmailLocked validates the submission and marks the code request outstanding
func (f *authFlow) startEmailLocked(email string) (uint64, AuthView, error) {
	if f.state == domain.AuthStateVerified {
		f.resetLocked(false)
	}
	if f.busy {
		return 0, f.viewLocked(), &errors.ErrPrecondition{Message: msgLoginBusy}
	}
	if !f.state.CanTransitionTo(domain.AuthStateOtpSent) {
		return 0, f.viewLocked(), &errors.ErrInvalidStateTransition{From: f.state, To: domain.AuthStateOtpSent}
	}

	var verr *errors.ErrValidation
	switch {
	case email == "":
		verr = &errors.ErrValidation{Message: msgEmailRequired, Fields: map[string]string{"email": msgEmailRequired}}
	case !validate.Email(email):
		verr = &errors.ErrValidation{Message: msgEmailInvalid, Fields: map[string]string{"email": msgEmailInvalid}}
	}
	if verr != nil {
		view, err := f.failEmailLocked(verr)
		return 0, view, err
	}
	f.email = email
	f.emailErr = ""
	return f.beginLocked(), f.viewLocked(), nil
}

func (f *authFlow) failEmailLocked(err error) (AuthView, error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		f.emailErr = e.Message
	case *errors.ErrUpstream:
		f.emailErr = e.Message
	}
	return f.viewLocked(), err
}

// beginLocked marks a network call outstanding and returns its generation
func (f *authFlow) beginLocked() uint64 {
	f.busy = true
	f.gen++
	return f.gen
}

// endLocked clears the outstanding call. It reports false when the flow was
// cancelled or reset meanwhile, in which case the result must be dropped.
func (f *authFlow) endLocked(gen uint64) bool {
	if f.gen != gen {
		return false
	}
	f.busy = false
	return true
}

// current reports whether the call of generation gen has not been cancelled
func (f *authFlow) current(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen == gen
}

// startCodeLocked validates the code and marks the verification outstanding
func (f *authFlow) startCodeLocked(code string) (uint64, AuthView, error) {
	if f.busy {
		return 0, f.viewLocked(), &errors.ErrPrecondition{Message: msgLoginBusy}
	}
	if !f.state.CanTransitionTo(domain.AuthStateVerified) {
		return 0, f.viewLocked(), &errors.ErrInvalidStateTransition{From: f.state, To: domain.AuthStateVerified}
	}
	if len(code) != otpLength {
		f.otpErr = msgOTPInvalid
		return 0, f.viewLocked(), &errors.ErrValidation{Message: msgOTPInvalid, Fields: map[string]string{"otp": msgOTPInvalid}}
	}
	f.otpErr = ""
	return f.beginLocked(), f.viewLocked(), nil
}

// SubmitCode verifies the code and logs in. It returns where navigation resumes.
func (f *authFlow) SubmitCode(ctx context.Context, code string) (domain.Location, AuthView, error) {
	f.mu.Lock()
	gen, view, err := f.startCodeLocked(code)
	email, timeout := f.email, f.timeout
	f.mu.Unlock()
	if err != nil {
		return domain.Location{}, view, err
	}

	token, err := f.backend.VerifyOTP(ctx, email, code, backend.WithTimeout(timeout))

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.endLocked(gen) {
		return domain.Location{}, f.viewLocked(), &errors.ErrPrecondition{Message: msgLoginCancelled}
	}
	if err == nil {
		err = f.session.Login(token)
	}
	if err != nil {
		if lerr := f.session.Logout(); lerr != nil {
			f.logger.Warn("Failed to clear session after failed verification", zap.Error(lerr))
		}
		f.otpErr = backend.MessageOr(err, msgVerifyFailed)
		f.logger.Info("OTP verification failed", zap.String("email", email), zap.Error(err))
		return domain.Location{}, f.viewLocked(), &errors.ErrUpstream{Message: f.otpErr, Err: err}
	}

	f.session.SetUser(email)
	f.state = domain.AuthStateVerified
	dest := domain.Location{Path: nav.HomePath}
	if f.returnTo != nil {
		dest = *f.returnTo
		f.returnTo = nil
	}
	f.logger.Info("Logged in", zap.String("email", email), zap.String("redirect", dest.Path))
	return dest, f.viewLocked(), nil
}

// Cancel abandons the flow and returns to the home page
func (f *authFlow) Cancel() domain.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked(true)
	return domain.Location{Path: nav.HomePath}
}

// SetReturnTo remembers where to go after login. A completed flow starts over.
func (f *authFlow) SetReturnTo(loc domain.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == domain.AuthStateVerified {
		f.resetLocked(true)
	}
	f.returnTo = &loc
}

// Snapshot returns the current view
func (f *authFlow) Snapshot() AuthView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *authFlow) resetLocked(dropReturn bool) {
	f.busy = false
	f.gen++
	f.state = domain.AuthStateEnteringEmail
	f.email = ""
	f.emailErr = ""
	f.otpErr = ""
	if dropReturn {
		f.returnTo = nil
	}
}

func (f *authFlow) viewLocked() AuthView {
	v := AuthView{
		State:      f.state,
		Email:      f.email,
		EmailError: f.emailErr,
		OTPError:   f.otpErr,
	}
	if f.returnTo != nil {
		loc := *f.returnTo
		v.ReturnTo = &loc
	}
	return v
}

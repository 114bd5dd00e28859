package service

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/emailjs"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/notify"
	"github.com/realahmed45/future-bali-frontend/internal/repository"
	"github.com/realahmed45/future-bali-frontend/internal/session"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const (
	msgOrderIDMissing  = "Order ID is missing. Please go back and try again."
	msgRequiredFields  = "Please fill in all required fields"
	msgRequiredCorrect = "Please fill in all required fields correctly"
)

// CheckoutDeps wires the checkout steps
type CheckoutDeps struct {
	Backend  *backend.Client
	Session  *session.Session
	Store    *storage.Store
	Repos    *repository.Repositories
	Graph    *nav.Graph
	Notifier *notify.Center
	Mailer   *emailjs.Client
	Confirm  emailjs.Template
	FromName string
	Timeouts config.BackendConfig
	Logger   *zap.Logger
}

// checkoutService runs the checkout steps. Each step validates locally, persists its
// slice to the backend, checkpoints the draft and returns the next route.
type checkoutService struct {
	backend  *backend.Client
	session  *session.Session
	store    *storage.Store
	repos    *repository.Repositories
	graph    *nav.Graph
	notifier *notify.Center
	mailer   *emailjs.Client
	confirm  emailjs.Template
	fromName string
	timeouts config.BackendConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewCheckoutService creates the checkout step service
func NewCheckoutService(d CheckoutDeps) *checkoutService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &checkoutService{
		backend:  d.Backend,
		session:  d.Session,
		store:    d.Store,
		repos:    d.Repos,
		graph:    d.Graph,
		notifier: d.Notifier,
		mailer:   d.Mailer,
		confirm:  d.Confirm,
		fromName: d.FromName,
		timeouts: d.Timeouts,
		logger:   d.Logger,
		now:      time.Now,
	}
}

// carried returns a private copy of the navigation state, or an empty draft.
// Drafts without an id get one so they can be checkpointed.
func carried(state *domain.OrderDraft) domain.OrderDraft {
	var d domain.OrderDraft
	if state != nil {
		d = state.Clone()
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return d
}

func reauth(path string, draft domain.OrderDraft) error {
	d := draft.Clone()
	return &errors.ErrReauthRequired{Return: domain.Location{Path: path, State: &d}}
}

// requireSession stops a step before any backend call when no token is held
func (s *checkoutService) requireSession(path string, draft domain.OrderDraft) error {
	if _, ok := s.session.Token(); !ok {
		return reauth(path, draft)
	}
	return nil
}

func requireOrderID(draft domain.OrderDraft) error {
	if draft.OrderID == "" {
		return &errors.ErrPrecondition{Message: msgOrderIDMissing}
	}
	return nil
}

// stepFailed turns a rejected backend call into the step's outcome.
// A rejected token sends the customer back through login with the draft intact.
func (s *checkoutService) stepFailed(ctx context.Context, step domain.Step, path string, draft domain.OrderDraft, err error, fallback string) error {
	s.logger.Warn("Checkout step failed",
		zap.String("step", string(step)),
		zap.String("draft_id", draft.ID.String()),
		zap.String("order_id", draft.OrderID),
		zap.Error(err))
	s.recordEvent(ctx, draft, "step_failed", map[string]interface{}{
		"step":  string(step),
		"error": err.Error(),
	})

	if backend.IsUnauthorized(err) {
		if lerr := s.session.Logout(); lerr != nil {
			s.logger.Warn("Failed to clear rejected session", zap.Error(lerr))
		}
		return reauth(path, draft)
	}
	return &errors.ErrUpstream{Message: backend.MessageOr(err, fallback), Err: err}
}

// advance checkpoints draft after step and forwards to the next route
func (s *checkoutService) advance(ctx context.Context, step domain.Step, path string, draft domain.OrderDraft) (*StepResult, error) {
	next, err := s.graph.Next(path)
	if err != nil {
		return nil, err
	}
	s.checkpoint(ctx, step, draft)
	return &StepResult{Redirect: next, State: draft}, nil
}

// checkpoint saves the draft server side. Failures are logged; the backend write already succeeded.
func (s *checkoutService) checkpoint(ctx context.Context, step domain.Step, draft domain.OrderDraft) {
	if s.repos == nil || draft.ID == uuid.Nil {
		return
	}
	cp := &domain.DraftCheckpoint{Step: step, Draft: draft}
	if err := s.repos.Draft.Save(ctx, cp); err != nil {
		s.logger.Error("Failed to checkpoint draft", zap.String("draft_id", draft.ID.String()), zap.String("step", string(step)), zap.Error(err))
		return
	}
	s.recordEvent(ctx, draft, "step_completed", map[string]interface{}{
		"step":     string(step),
		"cart_id":  draft.CartID,
		"order_id": draft.OrderID,
	})
}

func (s *checkoutService) recordEvent(ctx context.Context, draft domain.OrderDraft, eventType string, data map[string]interface{}) {
	if s.repos == nil || draft.ID == uuid.Nil {
		return
	}
	event := &domain.DraftEvent{DraftID: draft.ID, EventType: eventType, EventData: data}
	if err := s.repos.DraftEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record draft event", zap.String("event_type", eventType), zap.Error(err))
	}
}

// Resume loads the last checkpoint of a draft
func (s *checkoutService) Resume(ctx context.Context, id string) (*domain.DraftCheckpoint, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "draft", ID: id}
	}
	return s.repos.Draft.GetByID(ctx, draftID)
}

const txnAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// transactionID is a display reference: TXN, unix millis, four base36 characters
func transactionID(now time.Time) string {
	var b strings.Builder
	b.WriteString("TXN")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	for i := 0; i < 4; i++ {
		b.WriteByte(txnAlphabet[rand.Intn(len(txnAlphabet))])
	}
	return b.String()
}

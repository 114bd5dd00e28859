package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/storage"
)

// Persister is the local storage the token is written through to
type Persister interface {
	GetString(key string) (string, bool, error)
	SetString(key, value string) error
	Delete(key string) error
}

// EventKind tells subscribers what changed
type EventKind string

const (
	LoggedIn  EventKind = "logged_in"
	LoggedOut EventKind = "logged_out"
)

// Event is delivered to subscribers after each write
type Event struct {
	Kind  EventKind
	Token string
}

// Session holds the single process-wide bearer token.
// Login and Logout are the only writers; readers either call Token or Subscribe.
type Session struct {
	mu     sync.RWMutex
	token  string
	email  string
	store  Persister
	logger *zap.Logger

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// New creates a session, restoring any token already persisted
func New(store Persister, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		store:  store,
		logger: logger,
		subs:   make(map[int]func(Event)),
	}
	token, ok, err := store.GetString(storage.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if ok {
		s.token = token
		logger.Debug("Restored session token from local storage")
	}
	return s, nil
}

// Login persists token as the current session
func (s *Session) Login(token string) error {
	s.mu.Lock()
	if err := s.store.SetString(storage.KeyAuthToken, token); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = token
	s.mu.Unlock()

	s.publish(Event{Kind: LoggedIn, Token: token})
	return nil
}

// Logout removes the token; later Token calls report absent
func (s *Session) Logout() error {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.email = ""
	err := s.store.Delete(storage.KeyAuthToken)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if had {
		s.publish(Event{Kind: LoggedOut})
	}
	return nil
}

// Token returns the bearer token, if any. The token is opaque and never inspected.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetUser records the email the backend reported for the token
func (s *Session) SetUser(email string) {
	s.mu.Lock()
	s.email = email
	s.mu.Unlock()
}

// User returns the last verified email
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Subscribe registers fn for change notifications. Call the returned func to stop.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) publish(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

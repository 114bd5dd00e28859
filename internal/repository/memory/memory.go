// Package memory keeps draft checkpoints in process memory when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/repository"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

// NewRepositories creates an in-memory set of repositories
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Draft:      NewDraftRepository(),
		DraftEvent: NewDraftEventRepository(),
	}
}

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]domain.DraftCheckpoint
}

func NewDraftRepository() *draftRepository {
	return &draftRepository{drafts: make(map[uuid.UUID]domain.DraftCheckpoint)}
}

func (r *draftRepository) Save(ctx context.Context, cp *domain.DraftCheckpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if cp.DraftID == uuid.Nil {
		cp.DraftID = cp.Draft.ID
	}
	if existing, ok := r.drafts[cp.DraftID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	cp.CartID = cp.Draft.CartID
	cp.OrderID = cp.Draft.OrderID

	stored := *cp
	stored.Draft = cp.Draft.Clone()
	r.drafts[cp.DraftID] = stored
	return nil
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftCheckpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp, ok := r.drafts[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "draft", ID: id.String()}
	}
	cp.Draft = cp.Draft.Clone()
	return &cp, nil
}

func (r *draftRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.DraftCheckpoint, error) {
	r.mu.RLock()
	all := make([]*domain.DraftCheckpoint, 0, len(r.drafts))
	for _, cp := range r.drafts {
		c := cp
		c.Draft = cp.Draft.Clone()
		all = append(all, &c)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

type draftEventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]*domain.DraftEvent
}

func NewDraftEventRepository() *draftEventRepository {
	return &draftEventRepository{events: make(map[uuid.UUID][]*domain.DraftEvent)}
}

func (r *draftEventRepository) Create(ctx context.Context, event *domain.DraftEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	e := *event
	r.mu.Lock()
	r.events[event.DraftID] = append(r.events[event.DraftID], &e)
	r.mu.Unlock()
	return nil
}

func (r *draftEventRepository) GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]*domain.DraftEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*domain.DraftEvent(nil), r.events[draftID]...), nil
}

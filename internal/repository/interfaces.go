package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
)

// DraftRepository stores the last successful checkpoint of each draft
type DraftRepository interface {
	Save(ctx context.Context, cp *domain.DraftCheckpoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftCheckpoint, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.DraftCheckpoint, error)
}

// DraftEventRepository defines draft event data access methods
type DraftEventRepository interface {
	Create(ctx context.Context, event *domain.DraftEvent) error
	GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]*domain.DraftEvent, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Draft      DraftRepository
	DraftEvent DraftEventRepository
}

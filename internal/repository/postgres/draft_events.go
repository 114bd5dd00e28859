package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
)

type draftEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftEventRepository creates a new draft event repository
func NewDraftEventRepository(db *sql.DB, logger *zap.Logger) *draftEventRepository {
	return &draftEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *draftEventRepository) Create(ctx context.Context, event *domain.DraftEvent) error {
	query := `
		INSERT INTO draft_events (id, draft_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var eventDataJSON []byte
	var err error
	if event.EventData != nil {
		eventDataJSON, err = json.Marshal(event.EventData)
		if err != nil {
			return err
		}
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.DraftID,
		event.EventType,
		eventDataJSON,
		event.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create draft event", zap.Error(err))
		return err
	}

	return nil
}

func (r *draftEventRepository) GetByDraftID(ctx context.Context, draftID uuid.UUID) ([]*domain.DraftEvent, error) {
	query := `
		SELECT id, draft_id, event_type, event_data, created_at
		FROM draft_events
		WHERE draft_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, draftID)
	if err != nil {
		r.logger.Error("Failed to get draft events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*domain.DraftEvent
	for rows.Next() {
		var event domain.DraftEvent
		var eventDataJSON []byte

		if err := rows.Scan(
			&event.ID,
			&event.DraftID,
			&event.EventType,
			&eventDataJSON,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(eventDataJSON) > 0 {
			if err := json.Unmarshal(eventDataJSON, &event.EventData); err != nil {
				return nil, err
			}
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}

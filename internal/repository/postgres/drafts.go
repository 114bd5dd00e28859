package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

type draftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftRepository creates a new draft checkpoint repository
func NewDraftRepository(db *sql.DB, logger *zap.Logger) *draftRepository {
	return &draftRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts the checkpoint or replaces the existing one for the same draft
func (r *draftRepository) Save(ctx context.Context, cp *domain.DraftCheckpoint) error {
	query := `
		INSERT INTO draft_checkpoints (id, step, cart_id, order_id, draft, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			step = EXCLUDED.step,
			cart_id = EXCLUDED.cart_id,
			order_id = EXCLUDED.order_id,
			draft = EXCLUDED.draft,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`

	now := time.Now()
	if cp.DraftID == uuid.Nil {
		cp.DraftID = cp.Draft.ID
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	cp.CartID = cp.Draft.CartID
	cp.OrderID = cp.Draft.OrderID

	draftJSON, err := json.Marshal(cp.Draft)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx, query,
		cp.DraftID,
		cp.Step,
		nullString(cp.CartID),
		nullString(cp.OrderID),
		draftJSON,
		cp.CreatedAt,
		cp.UpdatedAt,
	).Scan(&cp.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to save draft checkpoint", zap.String("draft_id", cp.DraftID.String()), zap.Error(err))
		return err
	}

	return nil
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftCheckpoint, error) {
	query := `
		SELECT id, step, cart_id, order_id, draft, created_at, updated_at
		FROM draft_checkpoints
		WHERE id = $1
	`

	cp, err := scanCheckpoint(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "draft", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get draft checkpoint", zap.Error(err))
		return nil, err
	}
	return cp, nil
}

func (r *draftRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.DraftCheckpoint, error) {
	query := `
		SELECT id, step, cart_id, order_id, draft, created_at, updated_at
		FROM draft_checkpoints
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list draft checkpoints", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.DraftCheckpoint
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCheckpoint(row rowScanner) (*domain.DraftCheckpoint, error) {
	var cp domain.DraftCheckpoint
	var cartID, orderID sql.NullString
	var draftJSON []byte

	if err := row.Scan(
		&cp.DraftID,
		&cp.Step,
		&cartID,
		&orderID,
		&draftJSON,
		&cp.CreatedAt,
		&cp.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if cartID.Valid {
		cp.CartID = cartID.String
	}
	if orderID.Valid {
		cp.OrderID = orderID.String
	}
	if err := json.Unmarshal(draftJSON, &cp.Draft); err != nil {
		return nil, err
	}
	return &cp, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

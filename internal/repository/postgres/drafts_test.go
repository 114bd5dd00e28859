package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/migrations"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

// setupTestDB connects to TEST_DATABASE_URL and applies the schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := migrations.FS.ReadFile(migrations.InitSchema)
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, string(schema)))
	return db
}

func TestDraftRepository_SaveUpserts(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db, zap.NewNop())
	ctx := context.Background()

	draft := domain.NewDraft(domain.Package1().Base)
	cp := &domain.DraftCheckpoint{Step: domain.StepPackage, Draft: draft}
	require.NoError(t, repos.Draft.Save(ctx, cp))
	created := cp.CreatedAt

	draft.CartID = "cart-1"
	draft.OrderID = "order-1"
	cp2 := &domain.DraftCheckpoint{Step: domain.StepReviewOrder, Draft: draft}
	require.NoError(t, repos.Draft.Save(ctx, cp2))

	got, err := repos.Draft.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReviewOrder, got.Step)
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, "cart-1", got.Draft.CartID)
	assert.WithinDuration(t, created, got.CreatedAt, 0)

	require.NoError(t, repos.DraftEvent.Create(ctx, &domain.DraftEvent{
		DraftID:   draft.ID,
		EventType: "step_completed",
		EventData: map[string]interface{}{"step": "review_order"},
	}))
	events, err := repos.DraftEvent.GetByDraftID(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "review_order", events[0].EventData["step"])
}

func TestDraftRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewDraftRepository(db, zap.NewNop()).GetByID(context.Background(), uuid.New())
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

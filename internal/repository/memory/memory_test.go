package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

func TestDraftRepository_SaveGet(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()

	draft := domain.NewDraft(domain.Package1().Base)
	cp := &domain.DraftCheckpoint{Step: domain.StepPackage, Draft: draft}
	require.NoError(t, repo.Save(ctx, cp))
	assert.Equal(t, draft.ID, cp.DraftID)
	created := cp.CreatedAt

	draft.CartID = "cart-1"
	require.NoError(t, repo.Save(ctx, &domain.DraftCheckpoint{Step: domain.StepCart, Draft: draft}))

	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepCart, got.Step)
	assert.Equal(t, "cart-1", got.CartID)
	assert.Equal(t, created, got.CreatedAt)

	// returned copies are detached from the store
	got.Draft.SelectedAddOns = append(got.Draft.SelectedAddOns, domain.AddOn{Room: "Garden"})
	again, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Draft.SelectedAddOns)

	_, err = repo.GetByID(ctx, uuid.New())
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestDraftRepository_ListRecent(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		d := domain.NewDraft(domain.Package1().Base)
		ids = append(ids, d.ID)
		require.NoError(t, repo.Save(ctx, &domain.DraftCheckpoint{Step: domain.StepPackage, Draft: d}))
		time.Sleep(time.Millisecond)
	}

	list, err := repo.ListRecent(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].DraftID)
	assert.Equal(t, ids[1], list[1].DraftID)

	list, err = repo.ListRecent(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ids[0], list[0].DraftID)

	list, err = repo.ListRecent(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraftEventRepository(t *testing.T) {
	repo := NewDraftEventRepository()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.DraftEvent{DraftID: id, EventType: "step_completed"}))
	require.NoError(t, repo.Create(ctx, &domain.DraftEvent{DraftID: id, EventType: "step_failed"}))
	require.NoError(t, repo.Create(ctx, &domain.DraftEvent{DraftID: uuid.New(), EventType: "other"}))

	events, err := repo.GetByDraftID(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "step_completed", events[0].EventType)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
}

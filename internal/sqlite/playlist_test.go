package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepository_SaveListDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", true)
	repo := NewPlaylistRepository(db)

	override := 30
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s1 := testSlot("s1", "p1", "m1", 2)
	s1.ImageDurationOverride = &override
	s1.StartAt = &start
	require.NoError(t, repo.Save(ctx, s1))
	require.NoError(t, repo.Save(ctx, testSlot("s2", "p1", "dangling", 1)))
	require.NoError(t, repo.Save(ctx, testSlot("s3", "p2", "m1", 1)))

	items, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "s1", items[0].ID, "insertion order")
	require.Equal(t, 30, *items[0].ImageDurationOverride)
	require.True(t, start.Equal(*items[0].StartAt))
	require.Nil(t, items[0].EndAt)
	require.Equal(t, "dangling", items[1].MediaID)

	s1.Order = 5
	require.NoError(t, repo.Save(ctx, s1))
	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 5, got.Order)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "s1"), repository.ErrNotFound)
}

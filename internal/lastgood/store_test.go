package lastgood

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/precedence"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	duration := 12
	snap := &Snapshot{
		ProjectID:   "p1",
		ProjectCode: "lobby",
		RunID:       "01HZX",
		CompiledAt:  time.Date(2025, 1, 10, 8, 30, 0, 123, time.UTC),
		Items: []precedence.ResolvedItem{{
			SlotID:      "s1",
			MediaID:     "m1",
			Title:       "Promo",
			SourceURL:   "https://cdn.example.com/promo.jpg",
			Kind:        media.KindImage,
			Duration:    &duration,
			Category:    "food",
			CTA:         &category.Label{EN: "Order now"},
			Order:       1,
			ActiveUntil: &end,
		}},
	}
	require.NoError(t, s.Put(ctx, snap))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "lobby", got.ProjectCode)
	require.True(t, snap.CompiledAt.Equal(got.CompiledAt))
	require.Len(t, got.Items, 1)
	require.Equal(t, 12, *got.Items[0].Duration)
	require.Equal(t, "Order now", got.Items[0].CTA.EN)
	require.True(t, end.Equal(*got.Items[0].ActiveUntil))
	require.Nil(t, got.Items[0].ActiveFrom)

	id, err := s.ProjectIDForCode(ctx, "lobby")
	require.NoError(t, err)
	require.Equal(t, "p1", id)
}

func TestStore_Missing(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.ProjectIDForCode(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Put(ctx, &Snapshot{ProjectID: "p1", Items: []precedence.ResolvedItem{{SlotID: "a"}, {SlotID: "b"}}}))
	require.NoError(t, s.Put(ctx, &Snapshot{ProjectID: "p1", Items: []precedence.ResolvedItem{}}))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestMarshal_Deterministic(t *testing.T) {
	snap := &Snapshot{ProjectID: "p1", CompiledAt: time.Unix(1700000000, 0).UTC()}
	a, err := marshal(snap)
	require.NoError(t, err)
	b, err := marshal(snap)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestProviderRepository_SaveGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	repo := NewProviderRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	p := &provider.Provider{
		ID:             "prov1",
		ProjectID:      "p1",
		NameEN:         "Som Tam House",
		NameTH:         "บ้านส้มตำ",
		Slug:           "som-tam-house",
		Category:       provider.CategoryFood,
		SubCategoryIDs: []string{"thai", "isan"},
		Details:        []provider.Detail{{Label: "Hours", Value: "10:00-21:00"}},
		Media:          []provider.Promo{{Title: "Lunch set", URL: "https://cdn.example.com/lunch.jpg", MIMEType: "image/jpeg"}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx, "prov1")
	require.NoError(t, err)
	require.Equal(t, []string{"thai", "isan"}, got.SubCategoryIDs)
	require.Equal(t, "Hours", got.Details[0].Label)
	require.Equal(t, "บ้านส้มตำ", got.NameTH)
	require.Equal(t, p.Media, got.Media)

	list, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.Get(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProviderRepository_MalformedJSON(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)

	_, err := db.ExecContext(ctx,
		`INSERT INTO providers (id, project_id, name_en, slug, category, details) VALUES ('bad', 'p1', 'Bad', 'bad', 'food', '{not json')`)
	require.NoError(t, err)

	_, err = NewProviderRepository(db).Get(ctx, "bad")
	require.ErrorIs(t, err, repository.ErrMalformed)
}

func TestCategoryRepository_SaveGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	repo := NewCategoryRepository(db)

	_, err := repo.GetByProject(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	cfg := &category.Config{
		ID:        "cfg1",
		ProjectID: "p1",
		Categories: []category.Entry{{
			ID:    "food",
			Label: category.Label{EN: "Food", TH: "อาหาร"},
			CTA:   category.Label{EN: "Order now"},
		}},
	}
	require.NoError(t, repo.Save(ctx, cfg))

	cfg.Categories = append(cfg.Categories, category.Entry{ID: "rent"})
	require.NoError(t, repo.Save(ctx, cfg))

	got, err := repo.GetByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "cfg1", got.ID)
	require.Len(t, got.Categories, 2)
	cta, ok := got.CTA("food")
	require.True(t, ok)
	require.Equal(t, "Order now", cta.EN)
}

func TestAPIKeyRepository(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAPIKeyRepository(db)

	require.NoError(t, repo.Create(ctx, "secret-token", "editor@example.com", "seeded"))

	actor, err := repo.ResolveActor(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "editor@example.com", actor)

	_, err = repo.ResolveActor(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/repository"
	"github.com/stretchr/testify/require"
)

func testMedia(id string, projects ...string) *media.Media {
	now := time.Now().UTC().Truncate(time.Second)
	return &media.Media{
		ID:         id,
		Title:      "Media " + id,
		Kind:       media.KindImage,
		ImageURL:   "https://cdn.example.com/" + id + ".jpg",
		ProjectIDs: projects,
		Category:   media.CategoryFood,
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func testSlot(id, projectID, mediaID string, order int) *playlist.Item {
	now := time.Now().UTC().Truncate(time.Second)
	return &playlist.Item{ID: id, ProjectID: projectID, MediaID: mediaID, Order: order, Enabled: true, CreatedAt: now, UpdatedAt: now}
}

func TestMediaRepository_SaveGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", true)
	repo := NewMediaRepository(db)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	duration := 15
	providerID := "prov1"
	m := testMedia("m1", "p2", "p1")
	m.StartAt, m.EndAt = &start, &end
	m.DefaultImageDuration = &duration
	m.ProviderID = &providerID
	m.AssetMIMEType = "image/jpeg"
	require.NoError(t, repo.Save(ctx, m))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p1"}, got.ProjectIDs)
	require.Equal(t, media.KindImage, got.Kind)
	require.True(t, start.Equal(*got.StartAt))
	require.True(t, end.Equal(*got.EndAt))
	require.Equal(t, 15, *got.DefaultImageDuration)
	require.Equal(t, "prov1", got.Provider())
	require.Equal(t, "image/jpeg", got.AssetMIMEType)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMediaRepository_SaveReplacesProjectSet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", true)
	repo := NewMediaRepository(db)

	m := testMedia("m1", "p1", "p2")
	require.NoError(t, repo.Save(ctx, m))

	m.ProjectIDs = []string{"p2"}
	m.Title = "Renamed"
	require.NoError(t, repo.Save(ctx, m))

	inP1, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Empty(t, inP1)

	inP2, err := repo.ListByProject(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, inP2, 1)
	require.Equal(t, "Renamed", inP2[0].Title)
	require.Equal(t, []string{"p2"}, inP2[0].ProjectIDs)
}

func TestMediaRepository_ListByProjectContainment(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", true)
	repo := NewMediaRepository(db)

	require.NoError(t, repo.Save(ctx, testMedia("shared", "p1", "p2")))
	require.NoError(t, repo.Save(ctx, testMedia("only2", "p2")))

	list, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "shared", list[0].ID)
	require.ElementsMatch(t, []string{"p1", "p2"}, list[0].ProjectIDs)

	list, err = repo.ListByProject(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestMediaRepository_UnknownProject(t *testing.T) {
	db := NewTestDB(t)
	err := NewMediaRepository(db).Save(context.Background(), testMedia("m1", "ghost"))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestMediaRepository_Search(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", true)
	repo := NewMediaRepository(db)

	noodles := testMedia("m1", "p1")
	noodles.Title = "Khao Soi Noodles"
	noodles.Notes = "Chiang Mai curry noodle soup"
	require.NoError(t, repo.Save(ctx, noodles))

	laundry := testMedia("m2", "p1")
	laundry.Title = "Laundry Express"
	laundry.Category = media.CategoryServices
	require.NoError(t, repo.Save(ctx, laundry))

	elsewhere := testMedia("m3", "p2")
	elsewhere.Title = "Noodles Elsewhere"
	require.NoError(t, repo.Save(ctx, elsewhere))

	results, err := repo.Search(ctx, "noodles", media.SearchOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "m1", results[0].Media.ID)
	require.Equal(t, []string{"p1"}, results[0].Media.ProjectIDs)

	results, err = repo.Search(ctx, "curry", media.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Contains(t, results[0].Snippet, "[curry]")

	results, err = repo.Search(ctx, "noodles", media.SearchOptions{Category: media.CategoryServices})
	require.NoError(t, err)
	require.Empty(t, results)

	// FTS operators in user input are treated as literals.
	results, err = repo.Search(ctx, `noodles" OR "laundry`, media.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, results)

	// Updates re-index.
	noodles.Title = "Pad Thai"
	noodles.Notes = ""
	require.NoError(t, repo.Save(ctx, noodles))
	results, err = repo.Search(ctx, "khao", media.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, results)
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	proj := &project.Project{
		ID:             "p1",
		Title:          "Sky Tower",
		Code:           "sky-tower",
		HandoffBaseURL: "https://sky.example.com",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Sky Tower", got.Title)
	require.Equal(t, "sky-tower", got.Code)
	require.True(t, got.IsActive)
	require.True(t, now.Equal(got.CreatedAt))

	byCode, err := repo.GetByCode(ctx, "sky-tower")
	require.NoError(t, err)
	require.Equal(t, "p1", byCode.ID)

	_, err = repo.Get(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByCode(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_DuplicateCode(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	insertProject(t, db, "lobby", true)
	err := repo.Create(ctx, &project.Project{ID: "p2", Title: "Other", Code: "lobby"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	proj := insertProject(t, db, "p1", true)
	proj.IsActive = false
	proj.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.False(t, got.IsActive)

	require.ErrorIs(t, repo.Update(ctx, &project.Project{ID: "ghost", Code: "ghost"}), repository.ErrNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	insertProject(t, db, "p1", true)
	insertProject(t, db, "p2", false)

	mediaRepo := NewMediaRepository(db)
	require.NoError(t, mediaRepo.Save(ctx, testMedia("m1", "p1", "p2")))
	require.NoError(t, NewPlaylistRepository(db).Save(ctx, testSlot("s1", "p1", "m1", 1)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]project.ProjectSummary{}
	for _, s := range list {
		byID[s.ID] = s
	}
	require.Equal(t, 1, byID["p1"].MediaCount)
	require.Equal(t, 1, byID["p1"].SlotCount)
	require.Equal(t, 1, byID["p2"].MediaCount)
	require.Equal(t, 0, byID["p2"].SlotCount)
	require.False(t, byID["p2"].IsActive)
}

package playlist_test

import (
	"context"
	"testing"

	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func setup(m *media.Media) (*playlist.Service, *mocks.PlaylistRepository) {
	repo := &mocks.PlaylistRepository{}
	mediaRepo := &mocks.MediaRepository{}
	if m != nil {
		mediaRepo.On("Get", mock.Anything, m.ID).Return(m, nil)
	}
	mediaRepo.On("Get", mock.Anything, "missing").Return((*media.Media)(nil), repository.ErrNotFound)
	projects := &mocks.ProjectRepository{}
	projects.On("Get", mock.Anything, "p1").Return(&project.Project{ID: "p1", IsActive: true}, nil)
	return playlist.NewService(repo, mediaRepo, projects, nil, nil), repo
}

func imageMedia() *media.Media {
	return &media.Media{ID: "m1", Title: "Sale", Kind: media.KindImage, ProjectIDs: []string{"p1"}, Enabled: true}
}

func TestSaveItem_Assigns(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(imageMedia())
	repo.On("Get", ctx, mock.Anything).Return((*playlist.Item)(nil), repository.ErrNotFound)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	saved, err := svc.SaveItem(ctx, &playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 1, Enabled: true, ImageDurationOverride: intPtr(15)})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())
}

func TestSaveItem_ReferenceChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing media", func(t *testing.T) {
		svc, _ := setup(nil)
		_, err := svc.SaveItem(ctx, &playlist.Item{ProjectID: "p1", MediaID: "missing", Order: 1})
		require.ErrorIs(t, err, playlist.ErrMediaNotFound)
	})

	t.Run("media in another project", func(t *testing.T) {
		m := imageMedia()
		m.ProjectIDs = []string{"p2"}
		svc, _ := setup(m)
		_, err := svc.SaveItem(ctx, &playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 1})
		require.ErrorIs(t, err, playlist.ErrMediaNotInProject)
	})

	t.Run("disabled media", func(t *testing.T) {
		m := imageMedia()
		m.Enabled = false
		svc, _ := setup(m)
		_, err := svc.SaveItem(ctx, &playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 1})
		require.ErrorIs(t, err, playlist.ErrMediaDisabled)
	})

	t.Run("override on video", func(t *testing.T) {
		m := imageMedia()
		m.Kind = media.KindVideo
		svc, _ := setup(m)
		_, err := svc.SaveItem(ctx, &playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 1, ImageDurationOverride: intPtr(5)})
		require.ErrorIs(t, err, playlist.ErrInvalidInput)
	})
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, playlist.Validate(&playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 0}), playlist.ErrInvalidInput)
	require.ErrorIs(t, playlist.Validate(&playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 1, ImageDurationOverride: intPtr(301)}), playlist.ErrInvalidInput)
	require.NoError(t, playlist.Validate(&playlist.Item{ProjectID: "p1", MediaID: "m1", Order: 3}))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(nil)
	repo.On("Get", ctx, "s1").Return(&playlist.Item{ID: "s1", ProjectID: "p1", Order: 2}, nil)
	repo.On("Get", ctx, "nope").Return((*playlist.Item)(nil), repository.ErrNotFound)
	repo.On("Delete", ctx, "s1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "s1"))
	require.ErrorIs(t, svc.Delete(ctx, "nope"), playlist.ErrItemNotFound)
}

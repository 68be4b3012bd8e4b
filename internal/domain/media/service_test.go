package media_test

import (
	"context"
	"testing"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/repository/mocks"
	"github.com/rpggio/signage/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	outcome validator.Outcome
	calls   int
}

func (s *stubValidator) Validate(ctx context.Context, c validator.Candidate) validator.Outcome {
	s.calls++
	return s.outcome
}

func newMedia(providerID string) *media.Media {
	m := &media.Media{
		ID:         "m1",
		Title:      "Noodle Bar",
		Kind:       media.KindImage,
		ImageURL:   "https://cdn.example.com/noodle.png",
		ProjectIDs: []string{"p1"},
		Category:   media.CategoryFood,
		Enabled:    true,
	}
	if providerID != "" {
		m.ProviderID = &providerID
	}
	return m
}

func activeProjects() *mocks.ProjectRepository {
	projects := &mocks.ProjectRepository{}
	projects.On("Get", mock.Anything, "p1").Return(&project.Project{ID: "p1", IsActive: true}, nil)
	return projects
}

func TestSave_Accepted(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MediaRepository{}
	repo.On("Get", ctx, "m1").Return((*media.Media)(nil), repository.ErrNotFound)
	repo.On("Save", ctx, mock.Anything).Return(nil)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeMediaSaved && e.ProjectID == "p1"
	})).Return(nil)

	svc := media.NewService(repo, activeProjects(), &stubValidator{outcome: validator.Outcome{Status: validator.StatusAccepted}}, activities, nil)
	res, err := svc.Save(ctx, newMedia("prov1"))
	require.NoError(t, err)
	require.Equal(t, validator.StatusAccepted, res.Outcome.Status)
	require.False(t, res.Media.CreatedAt.IsZero())
	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestSave_RejectedWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MediaRepository{}
	repo.On("Get", ctx, "m1").Return((*media.Media)(nil), repository.ErrNotFound)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeMediaRejected
	})).Return(nil)

	rejection := &validator.IntegrityError{ProviderID: "prov1", Reason: "provider does not belong to any of the media's projects"}
	refs := &stubValidator{outcome: validator.Outcome{Status: validator.StatusRejected, Err: rejection}}

	svc := media.NewService(repo, activeProjects(), refs, activities, nil)
	res, err := svc.Save(ctx, newMedia("prov1"))
	require.ErrorIs(t, err, validator.ErrIntegrity)
	require.NotNil(t, res)
	require.Nil(t, res.Media)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSave_UnverifiedWritesWithWarning(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MediaRepository{}
	repo.On("Get", ctx, "m1").Return((*media.Media)(nil), repository.ErrNotFound)
	repo.On("Save", ctx, mock.Anything).Return(nil)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeMediaUnverified && e.Summary == "store offline"
	})).Return(nil)

	refs := &stubValidator{outcome: validator.Outcome{Status: validator.StatusUnverified, Warning: "store offline"}}
	svc := media.NewService(repo, activeProjects(), refs, activities, nil)
	res, err := svc.Save(ctx, newMedia("prov1"))
	require.NoError(t, err)
	require.Equal(t, validator.StatusUnverified, res.Outcome.Status)
	require.Equal(t, "store offline", res.Outcome.Warning)
	repo.AssertCalled(t, "Save", ctx, mock.Anything)
	activities.AssertExpectations(t)
}

func TestSave_InactiveProjectRefused(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MediaRepository{}
	repo.On("Get", ctx, "m1").Return((*media.Media)(nil), repository.ErrNotFound)
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", IsActive: false}, nil)
	refs := &stubValidator{}

	svc := media.NewService(repo, projects, refs, nil, nil)
	_, err := svc.Save(ctx, newMedia(""))
	require.ErrorIs(t, err, project.ErrProjectInactive)
	require.Zero(t, refs.calls)
}

func TestSave_ExistingProjectsNotRechecked(t *testing.T) {
	ctx := context.Background()
	existing := newMedia("")
	repo := &mocks.MediaRepository{}
	repo.On("Get", ctx, "m1").Return(existing, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)
	projects := &mocks.ProjectRepository{}

	svc := media.NewService(repo, projects, &stubValidator{outcome: validator.Outcome{Status: validator.StatusAccepted}}, nil, nil)
	updated := newMedia("")
	updated.Title = "Noodle Bar (new)"
	_, err := svc.Save(ctx, updated)
	require.NoError(t, err)
	projects.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSave_InvalidFieldsSkipValidator(t *testing.T) {
	refs := &stubValidator{}
	svc := media.NewService(&mocks.MediaRepository{}, &mocks.ProjectRepository{}, refs, nil, nil)
	m := newMedia("")
	m.Title = ""
	_, err := svc.Save(context.Background(), m)
	require.ErrorIs(t, err, media.ErrInvalidInput)
	require.Zero(t, refs.calls)
}

func TestListAssignable_FiltersDisabled(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MediaRepository{}
	on := *newMedia("")
	off := *newMedia("")
	off.ID, off.Enabled = "m2", false
	repo.On("ListByProject", ctx, "p1").Return([]media.Media{on, off}, nil)

	svc := media.NewService(repo, nil, nil, nil, nil)
	list, err := svc.ListAssignable(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "m1", list[0].ID)
}

func TestSearch_RequiresQuery(t *testing.T) {
	svc := media.NewService(&mocks.MediaRepository{}, nil, nil, nil, nil)
	_, err := svc.Search(context.Background(), "  ", media.SearchOptions{})
	require.ErrorIs(t, err, media.ErrInvalidInput)
}

package buildingupdate_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 9, 0, 0, 0, time.UTC)
}

func setup() (*buildingupdate.Service, *mocks.BuildingUpdateRepository, *mocks.ActivityRepository) {
	repo := &mocks.BuildingUpdateRepository{}
	projects := &mocks.ProjectRepository{}
	projects.On("Get", mock.Anything, "p1").Return(&project.Project{ID: "p1", IsActive: true}, nil)
	projects.On("Get", mock.Anything, "off").Return(&project.Project{ID: "off", IsActive: false}, nil)
	acts := &mocks.ActivityRepository{}
	acts.On("Log", mock.Anything, mock.Anything).Return(nil)
	return buildingupdate.NewService(repo, projects, acts, nil), repo, acts
}

func TestSave_DerivesSlugAndPublishTime(t *testing.T) {
	ctx := context.Background()
	svc, repo, acts := setup()
	repo.On("Get", ctx, mock.Anything).Return((*buildingupdate.Update)(nil), repository.ErrNotFound)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	in := &buildingupdate.Update{ProjectID: "p1", Title: "Lift Maintenance Friday"}
	saved, err := svc.Save(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "lift-maintenance-friday", saved.Slug)
	require.False(t, saved.PublishedAt.IsZero())
	require.False(t, saved.CreatedAt.IsZero())
	require.Empty(t, in.Slug)
	acts.AssertCalled(t, "Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeUpdateSaved && e.DocumentID == saved.ID
	}))
}

func TestSave_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()
	repo.On("Get", ctx, "u1").Return(&buildingupdate.Update{ID: "u1", ProjectID: "p1", CreatedAt: day(1)}, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	saved, err := svc.Save(ctx, &buildingupdate.Update{ID: "u1", ProjectID: "p1", Title: "Fire drill", Slug: "drill", PublishedAt: day(3)})
	require.NoError(t, err)
	require.Equal(t, day(1), saved.CreatedAt)
	require.Equal(t, "drill", saved.Slug)
	require.Equal(t, day(3), saved.PublishedAt)
}

func TestSave_InactiveProject(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()
	repo.On("Get", ctx, mock.Anything).Return((*buildingupdate.Update)(nil), repository.ErrNotFound)

	_, err := svc.Save(ctx, &buildingupdate.Update{ProjectID: "off", Title: "Closed"})
	require.ErrorIs(t, err, project.ErrProjectInactive)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, acts := setup()
	repo.On("Get", ctx, "u1").Return(&buildingupdate.Update{ID: "u1", ProjectID: "p1", Title: "Drill"}, nil)
	repo.On("Get", ctx, "gone").Return((*buildingupdate.Update)(nil), repository.ErrNotFound)
	repo.On("Delete", ctx, "u1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "u1"))
	require.ErrorIs(t, svc.Delete(ctx, "gone"), buildingupdate.ErrUpdateNotFound)
	acts.AssertCalled(t, "Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeUpdateDeleted
	}))
}

func TestListByProject_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()
	repo.On("ListByProject", ctx, "p1").Return([]buildingupdate.Update{
		{ID: "old", PublishedAt: day(1)},
		{ID: "new", PublishedAt: day(5)},
		{ID: "mid", PublishedAt: day(3)},
	}, nil)

	list, err := svc.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid", "old"}, ids(list))
}

func TestSortNewestFirst_Ties(t *testing.T) {
	list := []buildingupdate.Update{
		{ID: "b", PublishedAt: day(2), CreatedAt: day(1)},
		{ID: "a", PublishedAt: day(2), CreatedAt: day(1)},
		{ID: "c", PublishedAt: day(2), CreatedAt: day(2)},
	}
	buildingupdate.SortNewestFirst(list)
	require.Equal(t, []string{"c", "a", "b"}, ids(list))
}

func TestPublished(t *testing.T) {
	list := []buildingupdate.Update{
		{ID: "alert", PublishedAt: day(2), SubCategoryIDs: []string{buildingupdate.SubCategoryAlert}},
		{ID: "recent", PublishedAt: day(4), SubCategoryIDs: []string{buildingupdate.SubCategoryMostRecent}},
		{ID: "scheduled", PublishedAt: day(9)},
	}

	require.Equal(t, []string{"recent", "alert"}, ids(buildingupdate.Published(list, day(5), "")))
	require.Equal(t, []string{"alert"}, ids(buildingupdate.Published(list, day(5), buildingupdate.SubCategoryAlert)))
	require.Equal(t, []string{"scheduled", "recent", "alert"}, ids(buildingupdate.Published(list, day(9), "")))
}

func TestValidate(t *testing.T) {
	valid := func() *buildingupdate.Update {
		return &buildingupdate.Update{ProjectID: "p1", Title: "Drill", Slug: "drill", BgColor: "#ffcc00"}
	}
	require.NoError(t, buildingupdate.Validate(valid()))

	cases := map[string]func(u *buildingupdate.Update){
		"no project":       func(u *buildingupdate.Update) { u.ProjectID = "" },
		"no title":         func(u *buildingupdate.Update) { u.Title = " " },
		"no slug":          func(u *buildingupdate.Update) { u.Slug = "" },
		"bad color":        func(u *buildingupdate.Update) { u.BgColor = "yellow" },
		"bad sub-category": func(u *buildingupdate.Update) { u.SubCategoryIDs = []string{"weekly"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			u := valid()
			mutate(u)
			require.ErrorIs(t, buildingupdate.Validate(u), buildingupdate.ErrInvalidInput)
		})
	}
}

func ids(list []buildingupdate.Update) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.ID
	}
	return out
}

package mocks

import (
	"context"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByCode(ctx context.Context, code string) (*project.Project, error) {
	args := m.Called(ctx, code)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MediaRepository is a mock for media.Repository.
type MediaRepository struct {
	mock.Mock
}

func (m *MediaRepository) Get(ctx context.Context, id string) (*media.Media, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*media.Media); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MediaRepository) ListByProject(ctx context.Context, projectID string) ([]media.Media, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]media.Media); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MediaRepository) Save(ctx context.Context, item *media.Media) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MediaRepository) Search(ctx context.Context, query string, opts media.SearchOptions) ([]media.SearchResult, error) {
	args := m.Called(ctx, query, opts)
	if list, ok := args.Get(0).([]media.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PlaylistRepository is a mock for playlist.Repository.
type PlaylistRepository struct {
	mock.Mock
}

func (m *PlaylistRepository) Get(ctx context.Context, id string) (*playlist.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*playlist.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlaylistRepository) ListByProject(ctx context.Context, projectID string) ([]playlist.Item, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]playlist.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlaylistRepository) Save(ctx context.Context, item *playlist.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *PlaylistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ProviderRepository is a mock for provider.Repository.
type ProviderRepository struct {
	mock.Mock
}

func (m *ProviderRepository) Get(ctx context.Context, id string) (*provider.Provider, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*provider.Provider); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderRepository) ListByProject(ctx context.Context, projectID string) ([]provider.Provider, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]provider.Provider); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderRepository) Save(ctx context.Context, p *provider.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// CategoryRepository is a mock for category.Repository.
type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) GetByProject(ctx context.Context, projectID string) (*category.Config, error) {
	args := m.Called(ctx, projectID)
	if cfg, ok := args.Get(0).(*category.Config); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) Save(ctx context.Context, cfg *category.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// BuildingUpdateRepository is a mock for buildingupdate.Repository.
type BuildingUpdateRepository struct {
	mock.Mock
}

func (m *BuildingUpdateRepository) Get(ctx context.Context, id string) (*buildingupdate.Update, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*buildingupdate.Update); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BuildingUpdateRepository) ListByProject(ctx context.Context, projectID string) ([]buildingupdate.Update, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]buildingupdate.Update); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BuildingUpdateRepository) Save(ctx context.Context, u *buildingupdate.Update) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *BuildingUpdateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

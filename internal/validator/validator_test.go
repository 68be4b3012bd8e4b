package validator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/repository/mocks"
	"github.com/rpggio/signage/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidate_NoProviderAccepted(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	projects := &mocks.ProjectRepository{}
	v := validator.New(providers, projects, 0, nil)

	out := v.Validate(context.Background(), validator.Candidate{ProjectIDs: []string{"p1"}})
	require.Equal(t, validator.StatusAccepted, out.Status)
	providers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestValidate_MemberAccepted(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "prov1").Return(&provider.Provider{ID: "prov1", ProjectID: "p2"}, nil)
	projects := &mocks.ProjectRepository{}
	projects.On("Get", mock.Anything, "p2").Return(&project.Project{ID: "p2", IsActive: true}, nil)

	v := validator.New(providers, projects, 0, nil)
	out := v.Validate(context.Background(), validator.Candidate{
		MediaID:    "m1",
		ProviderID: "prov1",
		ProjectIDs: []string{"p1", "p2"},
	})
	require.Equal(t, validator.StatusAccepted, out.Status)
	require.True(t, out.Accepted())
	require.NoError(t, out.Err)
}

func TestValidate_NonMemberRejected(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "prov1").Return(&provider.Provider{ID: "prov1", ProjectID: "p9"}, nil)
	projects := &mocks.ProjectRepository{}

	v := validator.New(providers, projects, 0, nil)
	out := v.Validate(context.Background(), validator.Candidate{
		MediaID:    "m1",
		ProviderID: "prov1",
		ProjectIDs: []string{"p1", "p2"},
	})
	require.Equal(t, validator.StatusRejected, out.Status)
	require.False(t, out.Accepted())
	require.ErrorIs(t, out.Err, validator.ErrIntegrity)

	var integrity *validator.IntegrityError
	require.ErrorAs(t, out.Err, &integrity)
	require.Equal(t, "p9", integrity.ProviderProjectID)
	require.Equal(t, []string{"p1", "p2"}, integrity.ProjectIDs)
}

func TestValidate_MissingProviderRejected(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "gone").Return((*provider.Provider)(nil), repository.ErrNotFound)

	v := validator.New(providers, &mocks.ProjectRepository{}, 0, nil)
	out := v.Validate(context.Background(), validator.Candidate{ProviderID: "gone", ProjectIDs: []string{"p1"}})
	require.Equal(t, validator.StatusRejected, out.Status)
	require.ErrorIs(t, out.Err, validator.ErrIntegrity)
}

func TestValidate_StoreUnavailableIsUnverified(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "prov1").Return((*provider.Provider)(nil), repository.ErrUnavailable)

	v := validator.New(providers, &mocks.ProjectRepository{}, 0, nil)
	out := v.Validate(context.Background(), validator.Candidate{ProviderID: "prov1", ProjectIDs: []string{"p1"}})
	require.Equal(t, validator.StatusUnverified, out.Status)
	require.True(t, out.Accepted(), "unverified writes proceed")
	require.NotEmpty(t, out.Warning)
	require.NoError(t, out.Err)
}

func TestValidate_ProjectLookupFailureIsUnverified(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "prov1").Return(&provider.Provider{ID: "prov1", ProjectID: "p1"}, nil)
	projects := &mocks.ProjectRepository{}
	projects.On("Get", mock.Anything, "p1").Return((*project.Project)(nil), errors.New("connection reset"))

	v := validator.New(providers, projects, 0, nil)
	out := v.Validate(context.Background(), validator.Candidate{ProviderID: "prov1", ProjectIDs: []string{"p1"}})
	require.Equal(t, validator.StatusUnverified, out.Status)
}

func TestValidate_TimeoutIsUnverified(t *testing.T) {
	providers := &mocks.ProviderRepository{}
	providers.On("Get", mock.Anything, "slow").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return((*provider.Provider)(nil), context.DeadlineExceeded)

	v := validator.New(providers, &mocks.ProjectRepository{}, 10*time.Millisecond, nil)
	out := v.Validate(context.Background(), validator.Candidate{ProviderID: "slow", ProjectIDs: []string{"p1"}})
	require.Equal(t, validator.StatusUnverified, out.Status)
}

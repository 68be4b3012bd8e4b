package activity_test

import (
	"context"
	"testing"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := activity.WithActor(context.Background(), "editor@example.com")

	repo := &mocks.ActivityRepository{}
	entry := &activity.Entry{
		ProjectID: "proj1",
		Type:      activity.TypeMediaSaved,
		Summary:   "saved",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListOptions{ProjectID: "proj1"}).Return([]activity.Entry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.Log(ctx, entry))
	require.Equal(t, "editor@example.com", entry.Actor)
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListOptions{ProjectID: "proj1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestActivityService_LogRejectsEmpty(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	require.ErrorIs(t, svc.Log(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.Log(context.Background(), &activity.Entry{}), activity.ErrInvalidInput)
	repo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

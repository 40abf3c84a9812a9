package mocks

import (
	"context"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Replace(ctx context.Context, activities []activity.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context) (activity.Catalog, error) {
	args := m.Called(ctx)
	if catalog, ok := args.Get(0).(activity.Catalog); ok {
		return catalog, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Get(ctx context.Context, name string) (*activity.Activity, error) {
	args := m.Called(ctx, name)
	if act, ok := args.Get(0).(*activity.Activity); ok {
		return act, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) AddParticipant(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

func (m *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

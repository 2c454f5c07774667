package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskapi/internal/model"
	"taskapi/internal/service"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, filter *model.TaskFilter, skip, limit int64, sortBy string, sortDesc bool) (*service.TaskListResult, error) {
	args := m.Called(ctx, filter, skip, limit, sortBy, sortDesc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskListResult), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskService) Count(ctx context.Context, filter *model.TaskFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

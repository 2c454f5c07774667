package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskapi/internal/database"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) GetByID(ctx context.Context, collection, id string) (database.Record, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(database.Record), args.Error(1)
}

func (m *MockClient) GetMany(ctx context.Context, collection string, filter database.Filter, skip, limit int64, sort database.Sort) ([]database.Record, error) {
	args := m.Called(ctx, collection, filter, skip, limit, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Record), args.Error(1)
}

func (m *MockClient) Create(ctx context.Context, collection string, rec database.Record) (database.Record, error) {
	args := m.Called(ctx, collection, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(database.Record), args.Error(1)
}

func (m *MockClient) Update(ctx context.Context, collection, id string, changes database.Record) (database.Record, error) {
	args := m.Called(ctx, collection, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(database.Record), args.Error(1)
}

func (m *MockClient) Delete(ctx context.Context, collection, id string) (bool, error) {
	args := m.Called(ctx, collection, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) Count(ctx context.Context, collection string, filter database.Filter) (int64, error) {
	args := m.Called(ctx, collection, filter)
	return args.Get(0).(int64), args.Error(1)
}

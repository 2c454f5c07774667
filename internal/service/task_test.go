package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskapi/internal/model"
	"taskapi/internal/repository"
	repoMocks "taskapi/internal/repository/mocks"
)

func TestTaskService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockTaskRepository)
		wantErr    error
		wantTask   bool
	}{
		{
			name: "happy path",
			id:   "task-1",
			setupMocks: func(mRepo *repoMocks.MockTaskRepository) {
				mRepo.On("GetByID", ctx, "task-1").
					Return(&model.Task{ID: "task-1", Title: "buy milk"}, nil)
			},
			wantTask: true,
		},
		{
			name:       "validation error - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockTaskRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(mRepo *repoMocks.MockTaskRepository) {
				mRepo.On("GetByID", ctx, "missing").Return(nil, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "repository error",
			id:   "task-1",
			setupMocks: func(mRepo *repoMocks.MockTaskRepository) {
				mRepo.On("GetByID", ctx, "task-1").Return(nil, errors.New("db fail"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockTaskRepository)
			tt.setupMocks(mRepo)
			svc := NewTaskService(mRepo)

			task, err := svc.Get(ctx, tt.id)

			if tt.wantTask {
				assert.NoError(t, err)
				require.NotNil(t, task)
				assert.Equal(t, tt.id, task.ID)
			} else {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, task)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards query and pairs items with total", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		completed := false
		filter := &model.TaskFilter{IsCompleted: &completed}

		mRepo.On("GetMany", ctx, repository.ListQuery[model.TaskFilter]{
			Filter:   filter,
			Skip:     10,
			Limit:    5,
			SortBy:   "created_at",
			SortDesc: true,
		}).Return([]model.Task{{ID: "task-1"}}, nil)
		mRepo.On("Count", ctx, filter).Return(int64(42), nil)

		svc := NewTaskService(mRepo)
		res, err := svc.List(ctx, filter, 10, 5, "created_at", true)

		assert.NoError(t, err)
		require.NotNil(t, res)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, int64(42), res.Total)
		mRepo.AssertExpectations(t)
	})

	t.Run("defaults pagination", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		mRepo.On("GetMany", ctx, repository.ListQuery[model.TaskFilter]{
			Skip:  0,
			Limit: 100,
		}).Return([]model.Task{}, nil)
		mRepo.On("Count", ctx, (*model.TaskFilter)(nil)).Return(int64(0), nil)

		svc := NewTaskService(mRepo)
		res, err := svc.List(ctx, nil, -3, 0, "", false)

		assert.NoError(t, err)
		assert.Empty(t, res.Items)
		mRepo.AssertExpectations(t)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	title := "walk the dog"

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		in := model.TaskUpdate{Title: &title}
		mRepo.On("Update", ctx, "task-1", in).
			Return(&model.Task{ID: "task-1", Title: title}, nil)

		svc := NewTaskService(mRepo)
		task, err := svc.Update(ctx, "task-1", in)

		assert.NoError(t, err)
		require.NotNil(t, task)
		assert.Equal(t, title, task.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		mRepo.On("Update", ctx, "missing", mock.Anything).Return(nil, nil)

		svc := NewTaskService(mRepo)
		task, err := svc.Update(ctx, "missing", model.TaskUpdate{Title: &title})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, task)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewTaskService(new(repoMocks.MockTaskRepository))
		_, err := svc.Update(ctx, "", model.TaskUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		mRepo.On("Delete", ctx, "task-1").Return(true, nil)

		svc := NewTaskService(mRepo)
		assert.NoError(t, svc.Delete(ctx, "task-1"))
	})

	t.Run("missing id maps to not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		mRepo.On("Delete", ctx, "missing").Return(false, nil)

		svc := NewTaskService(mRepo)
		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewTaskService(new(repoMocks.MockTaskRepository))
		assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	})
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockTaskRepository)
	in := model.TaskCreate{Title: "buy milk"}
	mRepo.On("Create", ctx, in).Return(&model.Task{ID: "gen-id", Title: "buy milk"}, nil)

	svc := NewTaskService(mRepo)
	task, err := svc.Create(ctx, in)

	assert.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "gen-id", task.ID)
	mRepo.AssertExpectations(t)
}

package service

import (
	"context"
	"errors"

	"taskapi/internal/model"
	"taskapi/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("task not found")
)

// TaskListResult is the service-level DTO for paginated tasks.
type TaskListResult struct {
	Items []model.Task `json:"items"`
	Total int64        `json:"total"`
}

// TaskService defines the use cases for handling tasks.
type TaskService interface {
	// Get returns a single task by its ID.
	Get(ctx context.Context, id string) (*model.Task, error)

	// List returns tasks matching the filter with pagination and a total
	// count ignoring skip/limit.
	List(ctx context.Context, filter *model.TaskFilter, skip, limit int64, sortBy string, sortDesc bool) (*TaskListResult, error)

	// Create persists a new task.
	Create(ctx context.Context, in model.TaskCreate) (*model.Task, error)

	// Update partially updates a task by ID.
	Update(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error)

	// Delete removes a task by ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, filter *model.TaskFilter) (int64, error)
}

// taskService is a concrete implementation of TaskService.
type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService constructs a new TaskService.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Get(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, filter *model.TaskFilter, skip, limit int64, sortBy string, sortDesc bool) (*TaskListResult, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	items, err := s.repo.GetMany(ctx, repository.ListQuery[model.TaskFilter]{
		Filter:   filter,
		Skip:     skip,
		Limit:    limit,
		SortBy:   sortBy,
		SortDesc: sortDesc,
	})
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &TaskListResult{Items: items, Total: total}, nil
}

func (s *taskService) Create(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	return s.repo.Create(ctx, in)
}

func (s *taskService) Update(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	task, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *taskService) Count(ctx context.Context, filter *model.TaskFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	dbMocks "taskapi/internal/database/mocks"
	"taskapi/internal/model"
	"taskapi/internal/service"
	serviceMocks "taskapi/internal/service/mocks"
)

func TestHealthCheck(t *testing.T) {
	mockClient := new(dbMocks.MockClient)
	app := fiber.New()
	app.Get("/health", HealthCheck(mockClient))

	t.Run("healthy", func(t *testing.T) {
		mockClient.On("Count", mock.Anything, "tasks", mock.Anything).
			Return(int64(0), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		mockClient.On("Count", mock.Anything, "tasks", mock.Anything).
			Return(int64(0), errors.New("connection refused")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Post("/tasks", CreateTask(mockSvc))

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, model.TaskCreate{Title: "buy milk"}).
			Return(&model.Task{ID: "gen-id", Title: "buy milk"}, nil).Once()

		body, _ := json.Marshal(map[string]any{"title": "buy milk"})
		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var task model.Task
		json.NewDecoder(resp.Body).Decode(&task)
		assert.Equal(t, "gen-id", task.ID)
	})

	t.Run("missing title", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"description": "no title"})
		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "TITLE_REQUIRED", payload.Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestListTasks(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Get("/tasks", ListTasks(mockSvc))

	t.Run("success with filter and sorting", func(t *testing.T) {
		completed := true
		mockSvc.On("List", mock.Anything,
			&model.TaskFilter{IsCompleted: &completed},
			int64(5), int64(10), "created_at", true).
			Return(&service.TaskListResult{
				Items: []model.Task{{ID: "task-1", Title: "buy milk"}},
				Total: 1,
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/tasks?is_completed=true&skip=5&limit=10&sort_by=created_at&sort_desc=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result PaginatedResponse
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Items, 1)
		assert.Equal(t, int64(1), result.Total)
		assert.Equal(t, int64(5), result.Skip)
		assert.Equal(t, int64(10), result.Limit)
	})

	t.Run("no filter params means nil filter", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, (*model.TaskFilter)(nil),
			int64(0), int64(100), "", false).
			Return(&service.TaskListResult{Items: []model.Task{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks?limit=zero", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid is_completed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks?is_completed=maybe", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestGetTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Get("/tasks/:id", GetTask(mockSvc))

	t.Run("found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "task-1").
			Return(&model.Task{ID: "task-1", Title: "buy milk"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tasks/task-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "missing").
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/tasks/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "NOT_FOUND", payload.Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestUpdateTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Put("/tasks/:id", UpdateTask(mockSvc))

	t.Run("partial update", func(t *testing.T) {
		title := "walk the dog"
		mockSvc.On("Update", mock.Anything, "task-1", model.TaskUpdate{Title: &title}).
			Return(&model.Task{ID: "task-1", Title: title}, nil).Once()

		body, _ := json.Marshal(map[string]any{"title": title})
		req := httptest.NewRequest(http.MethodPut, "/tasks/task-1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "missing", mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		body, _ := json.Marshal(map[string]any{"title": "x"})
		req := httptest.NewRequest(http.MethodPut, "/tasks/missing", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestDeleteTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Delete("/tasks/:id", DeleteTask(mockSvc))

	t.Run("deleted", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "task-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tasks/task-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "missing").Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tasks/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

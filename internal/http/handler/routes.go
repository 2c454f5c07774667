package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskapi/internal/database"
	"taskapi/internal/model"
	"taskapi/internal/service"
)

// PaginatedResponse is the list envelope echoing the pagination window.
type PaginatedResponse struct {
	Items []model.Task `json:"items"`
	Total int64        `json:"total"`
	Skip  int64        `json:"skip"`
	Limit int64        `json:"limit"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they marshal requests and
// responses and translate service errors into status codes.
func RegisterRoutes(app *fiber.App, client database.Client, taskSvc service.TaskService) {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(client))
	app.Get("/healthz", LivenessProbe())

	app.Post("/tasks", CreateTask(taskSvc))
	app.Get("/tasks", ListTasks(taskSvc))
	app.Get("/tasks/:id", GetTask(taskSvc))
	app.Put("/tasks/:id", UpdateTask(taskSvc))
	app.Delete("/tasks/:id", DeleteTask(taskSvc))
}

// HealthCheck reports whether the active backend answers a trivial query.
func HealthCheck(client database.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, err := client.Count(ctx, model.TasksCollection, nil); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateTask handles POST /tasks.
func CreateTask(taskSvc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.TaskCreate
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if in.Title == "" {
			return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
		}

		task, err := taskSvc.Create(c.UserContext(), in)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(task)
	}
}

// ListTasks handles GET /tasks with filtering, pagination, and sorting.
func ListTasks(taskSvc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, err := parseInt64(c.Query("skip", "0"))
		if err != nil || skip < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SKIP", "invalid skip")
		}
		limit, err := parseInt64(c.Query("limit", "100"))
		if err != nil || limit < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		filter, err := taskFilterFromQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "invalid filter value")
		}

		sortBy := c.Query("sort_by")
		sortDesc := c.QueryBool("sort_desc", false)

		res, err := taskSvc.List(c.UserContext(), filter, skip, limit, sortBy, sortDesc)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(PaginatedResponse{
			Items: res.Items,
			Total: res.Total,
			Skip:  skip,
			Limit: limit,
		})
	}
}

// GetTask handles GET /tasks/:id.
func GetTask(taskSvc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		task, err := taskSvc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return taskError(c, err)
		}
		return c.JSON(task)
	}
}

// UpdateTask handles PUT /tasks/:id with partial-update semantics: only
// fields present in the body are modified.
func UpdateTask(taskSvc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.TaskUpdate
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		task, err := taskSvc.Update(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return taskError(c, err)
		}
		return c.JSON(task)
	}
}

// DeleteTask handles DELETE /tasks/:id.
func DeleteTask(taskSvc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := taskSvc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return taskError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// taskError translates service errors into standardized responses.
func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "task not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// taskFilterFromQuery builds a filter from query params, returning nil
// when no filter params were supplied so "no constraint" stays distinct
// from "constrain to empty value".
func taskFilterFromQuery(c *fiber.Ctx) (*model.TaskFilter, error) {
	var filter model.TaskFilter
	set := false

	if title := c.Query("title"); title != "" {
		filter.Title = &title
		set = true
	}
	if raw := c.Query("is_completed"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		filter.IsCompleted = &b
		set = true
	}

	if !set {
		return nil, nil
	}
	return &filter, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

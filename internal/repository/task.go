package repository

import (
	"context"
	"fmt"
	"time"

	"taskapi/internal/database"
	"taskapi/internal/model"
)

// TaskRepository defines typed data access for tasks. No business logic
// here — strictly persistence operations.
type TaskRepository interface {
	// GetByID returns the task with the given identifier, or (nil, nil)
	// when no task matches.
	GetByID(ctx context.Context, id string) (*model.Task, error)

	// GetMany returns tasks matching the query.
	GetMany(ctx context.Context, q ListQuery[model.TaskFilter]) ([]model.Task, error)

	// Create persists a new task and returns the stored form, including
	// the assigned identifier and timestamps.
	Create(ctx context.Context, in model.TaskCreate) (*model.Task, error)

	// Update applies the set fields of in. Returns (nil, nil) when no task
	// has that identifier.
	Update(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error)

	// Delete removes a task and reports whether one was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of tasks matching filter.
	Count(ctx context.Context, filter *model.TaskFilter) (int64, error)
}

// NewTaskRepository binds a database client to the tasks collection.
func NewTaskRepository(client database.Client) TaskRepository {
	return New(client, model.TasksCollection, taskCodec())
}

// taskCodec converts between task shapes and backend-neutral records.
// Create stamps created_at because the document store assigns no creation
// timestamp of its own; update stamps updated_at to mirror the relational
// on-update convention.
func taskCodec() Codec[model.Task, model.TaskCreate, model.TaskUpdate, model.TaskFilter] {
	return Codec[model.Task, model.TaskCreate, model.TaskUpdate, model.TaskFilter]{
		EncodeCreate: encodeTaskCreate,
		EncodeUpdate: encodeTaskUpdate,
		EncodeFilter: encodeTaskFilter,
		Decode:       decodeTask,
	}
}

func encodeTaskCreate(in model.TaskCreate) database.Record {
	rec := database.Record{
		"title":        in.Title,
		"is_completed": in.IsCompleted,
		"created_at":   time.Now().UTC(),
	}
	if in.Description != nil {
		rec["description"] = *in.Description
	}
	return rec
}

func encodeTaskUpdate(in model.TaskUpdate) database.Record {
	rec := database.Record{}
	if in.Title != nil {
		rec["title"] = *in.Title
	}
	if in.Description != nil {
		rec["description"] = *in.Description
	}
	if in.IsCompleted != nil {
		rec["is_completed"] = *in.IsCompleted
	}
	if len(rec) > 0 {
		rec["updated_at"] = time.Now().UTC()
	}
	return rec
}

func encodeTaskFilter(in model.TaskFilter) database.Filter {
	f := database.Filter{}
	if in.Title != nil {
		f["title"] = *in.Title
	}
	if in.IsCompleted != nil {
		f["is_completed"] = *in.IsCompleted
	}
	return f
}

// decodeTask builds a Task from a backend-neutral record, field by field.
// Missing required fields fail the conversion; no partial result is
// returned.
func decodeTask(rec database.Record) (model.Task, error) {
	var t model.Task
	var err error

	if t.ID, err = stringField(rec, "id"); err != nil {
		return model.Task{}, err
	}
	if t.Title, err = stringField(rec, "title"); err != nil {
		return model.Task{}, err
	}
	if t.IsCompleted, err = boolField(rec, "is_completed"); err != nil {
		return model.Task{}, err
	}
	if t.CreatedAt, err = timeField(rec, "created_at"); err != nil {
		return model.Task{}, err
	}

	if v, ok := rec["description"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return model.Task{}, fmt.Errorf("task field %q: expected string, got %T", "description", v)
		}
		t.Description = s
	}
	if v, ok := rec["updated_at"]; ok && v != nil {
		ts, isTime := v.(time.Time)
		if !isTime {
			return model.Task{}, fmt.Errorf("task field %q: expected timestamp, got %T", "updated_at", v)
		}
		t.UpdatedAt = &ts
	}
	return t, nil
}

func stringField(rec database.Record, name string) (string, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return "", fmt.Errorf("task record is missing required field %q", name)
	}
	s, isString := v.(string)
	if !isString {
		return "", fmt.Errorf("task field %q: expected string, got %T", name, v)
	}
	return s, nil
}

func boolField(rec database.Record, name string) (bool, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return false, fmt.Errorf("task record is missing required field %q", name)
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("task field %q: expected bool, got %T", name, v)
	}
	return b, nil
}

func timeField(rec database.Record, name string) (time.Time, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return time.Time{}, fmt.Errorf("task record is missing required field %q", name)
	}
	ts, isTime := v.(time.Time)
	if !isTime {
		return time.Time{}, fmt.Errorf("task field %q: expected timestamp, got %T", name, v)
	}
	return ts, nil
}

package model

import (
	"time"

	"taskapi/internal/database"
)

// TasksCollection is the logical name shared by both backends: the table
// name in PostgreSQL and the collection name in MongoDB.
const TasksCollection = "tasks"

// Task is the domain representation of one task. The identifier is a
// string regardless of backend (UUID text in PostgreSQL, ObjectID hex in
// MongoDB).
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TaskCreate is the input shape for creating a task.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	IsCompleted bool    `json:"is_completed"`
}

// TaskUpdate is the input shape for partially updating a task. Nil fields
// are left untouched.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// TaskFilter narrows task queries by equality. Nil fields impose no
// constraint, which is distinct from constraining to an empty value.
type TaskFilter struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// TaskSchema is the row-type descriptor registered with the relational
// adapter. The id column carries a server-side default so the store
// assigns identifiers on insert.
var TaskSchema = database.Schema{
	Table: TasksCollection,
	Columns: []database.Column{
		{Name: "id", Definition: "UUID PRIMARY KEY DEFAULT uuid_generate_v4()"},
		{Name: "title", Definition: "TEXT NOT NULL"},
		{Name: "description", Definition: "TEXT"},
		{Name: "is_completed", Definition: "BOOLEAN NOT NULL DEFAULT FALSE"},
		{Name: "created_at", Definition: "TIMESTAMPTZ NOT NULL DEFAULT now()"},
		{Name: "updated_at", Definition: "TIMESTAMPTZ"},
	},
}

// Schemas returns the full collection-to-schema registry handed to the
// relational backend at construction time.
func Schemas() map[string]database.Schema {
	return map[string]database.Schema{
		TasksCollection: TaskSchema,
	}
}

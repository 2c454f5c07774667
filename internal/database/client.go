// Package database contains the backend-neutral data access contract and
// its concrete adapters (PostgreSQL, MongoDB). Callers address data by
// logical collection name and exchange untyped records; the typed layer
// lives in internal/repository.
package database

import (
	"context"
	"errors"
)

// Record is the backend-neutral representation of one stored item.
// Every record returned by an adapter carries exactly one "id" field with
// a string value; backend-native identifier fields (raw primary keys,
// document object ids) never cross the adapter boundary.
type Record map[string]any

// Filter maps field names to equality values. Absent keys impose no
// constraint. The relational adapter silently drops keys that do not name
// a registered column; the document adapter passes keys through unchecked,
// so an unknown key matches nothing. This asymmetry is part of the
// contract.
type Filter map[string]any

// Sort maps field names to a direction. Directions use the numeric
// convention: SortAsc (1) or SortDesc (-1). A map carries no ordering, so
// the relative precedence of multiple keys is unspecified; callers that
// need a deterministic result order must sort by a single field. The
// repository layer only ever emits single-field sorts.
type Sort map[string]int

const (
	SortAsc  = 1
	SortDesc = -1
)

// ErrNotConnected is returned when an operation is invoked before Connect
// (or after Disconnect). Adapters never reconnect implicitly.
var ErrNotConnected = errors.New("database: client is not connected")

// Client is the uniform data access contract implemented by every backend
// adapter. Addressed-by-id reads and writes signal absence through their
// return values (nil Record, false), never through an error. Store faults
// from the underlying driver propagate unchanged; there is no retry layer
// here.
type Client interface {
	// Connect establishes the backend connection. Calling Connect on an
	// already connected client is a no-op.
	Connect(ctx context.Context) error

	// Disconnect releases the connection. Safe to call when not connected.
	Disconnect(ctx context.Context) error

	// GetByID returns the record whose identifier equals id, or (nil, nil)
	// when no such record exists.
	GetByID(ctx context.Context, collection, id string) (Record, error)

	// GetMany returns up to limit records matching filter, in sort order,
	// after skipping skip matches. A nil filter matches all records; a
	// limit <= 0 means no limit.
	GetMany(ctx context.Context, collection string, filter Filter, skip, limit int64, sort Sort) ([]Record, error)

	// Create persists a new record and returns the stored form, including
	// the backend-assigned identifier and any server-computed fields.
	Create(ctx context.Context, collection string, rec Record) (Record, error)

	// Update applies only the fields present in changes, leaving all other
	// fields untouched, and returns the post-update record. Returns
	// (nil, nil) when no record has that identifier.
	Update(ctx context.Context, collection, id string, changes Record) (Record, error)

	// Delete removes the record and reports whether one was removed.
	// Deleting a non-existent id returns false, not an error.
	Delete(ctx context.Context, collection, id string) (bool, error)

	// Count returns the number of records matching filter, ignoring any
	// pagination.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}

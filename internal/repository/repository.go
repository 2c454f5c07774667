// Package repository adapts typed domain objects onto the untyped
// database.Client contract. The generic Repository binds one client to
// one collection; a Codec supplies the conversions for a concrete domain
// type.
package repository

import (
	"context"

	"taskapi/internal/database"
)

// Codec bundles the conversions between one domain type's shapes and the
// field maps the database contract exchanges. Encoders must omit fields
// the caller left unset so partial semantics survive the conversion;
// Decode must fail when a stored record lacks a field the domain type
// requires.
type Codec[M, C, U, F any] struct {
	EncodeCreate func(C) database.Record
	EncodeUpdate func(U) database.Record
	EncodeFilter func(F) database.Filter
	Decode       func(database.Record) (M, error)
}

// ListQuery carries filtering, pagination, and single-field sorting for
// GetMany. A nil Filter matches everything.
type ListQuery[F any] struct {
	Filter   *F
	Skip     int64
	Limit    int64
	SortBy   string
	SortDesc bool
}

// Repository provides typed CRUD over one collection, regardless of which
// backend the client talks to.
type Repository[M, C, U, F any] struct {
	client     database.Client
	collection string
	codec      Codec[M, C, U, F]
}

// New binds a client, a collection name, and a codec into a typed
// repository.
func New[M, C, U, F any](client database.Client, collection string, codec Codec[M, C, U, F]) *Repository[M, C, U, F] {
	return &Repository[M, C, U, F]{
		client:     client,
		collection: collection,
		codec:      codec,
	}
}

// GetByID returns the item with the given identifier, or (nil, nil) when
// no item matches.
func (r *Repository[M, C, U, F]) GetByID(ctx context.Context, id string) (*M, error) {
	rec, err := r.client.GetByID(ctx, r.collection, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return r.decode(rec)
}

// GetMany returns items matching the query. The single-field sort is
// translated into the contract's direction map.
func (r *Repository[M, C, U, F]) GetMany(ctx context.Context, q ListQuery[F]) ([]M, error) {
	records, err := r.client.GetMany(ctx, r.collection, r.encodeFilter(q.Filter), q.Skip, q.Limit, sortSpec(q.SortBy, q.SortDesc))
	if err != nil {
		return nil, err
	}

	items := make([]M, 0, len(records))
	for _, rec := range records {
		item, err := r.codec.Decode(rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create persists a new item and returns the stored form.
func (r *Repository[M, C, U, F]) Create(ctx context.Context, in C) (*M, error) {
	rec, err := r.client.Create(ctx, r.collection, r.codec.EncodeCreate(in))
	if err != nil {
		return nil, err
	}
	return r.decode(rec)
}

// Update applies the set fields of in to the item with the given
// identifier. Returns (nil, nil) when no item matches.
func (r *Repository[M, C, U, F]) Update(ctx context.Context, id string, in U) (*M, error) {
	rec, err := r.client.Update(ctx, r.collection, id, r.codec.EncodeUpdate(in))
	if err != nil || rec == nil {
		return nil, err
	}
	return r.decode(rec)
}

// Delete removes the item and reports whether one was removed.
func (r *Repository[M, C, U, F]) Delete(ctx context.Context, id string) (bool, error) {
	return r.client.Delete(ctx, r.collection, id)
}

// Count returns the number of items matching filter.
func (r *Repository[M, C, U, F]) Count(ctx context.Context, filter *F) (int64, error) {
	return r.client.Count(ctx, r.collection, r.encodeFilter(filter))
}

func (r *Repository[M, C, U, F]) decode(rec database.Record) (*M, error) {
	item, err := r.codec.Decode(rec)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[M, C, U, F]) encodeFilter(filter *F) database.Filter {
	if filter == nil {
		return nil
	}
	return r.codec.EncodeFilter(*filter)
}

func sortSpec(sortBy string, desc bool) database.Sort {
	if sortBy == "" {
		return nil
	}
	direction := database.SortAsc
	if desc {
		direction = database.SortDesc
	}
	return database.Sort{sortBy: direction}
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Mongo implements Client against a single named MongoDB database.
// Collections are addressed directly by name; there is no schema registry.
// One long-lived driver client is shared by all calls and multiplexes over
// the driver's own connection pool.
type Mongo struct {
	uri      string
	database string

	client *mongo.Client
	db     *mongo.Database
}

// NewMongo creates a disconnected document adapter for the given
// connection string and database name.
func NewMongo(uri, database string) *Mongo {
	return &Mongo{uri: uri, database: database}
}

var _ Client = (*Mongo)(nil)

// Connect establishes the driver client and verifies connectivity with a
// ping. Calling Connect on an already connected adapter is a no-op.
func (m *Mongo) Connect(ctx context.Context) error {
	if m.db != nil {
		return nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("error pinging database: %w", err)
	}

	m.client = client
	m.db = client.Database(m.database)
	return nil
}

// Disconnect releases the driver client. Safe to call when not connected.
func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

// GetByID returns the document whose identifier equals id, or (nil, nil)
// when no document matches.
func (m *Mongo) GetByID(ctx context.Context, collection, id string) (Record, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}

	var doc map[string]any
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": nativeID(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return normalizeRecord(doc), nil
}

// GetMany returns matching documents with pagination and sorting. The
// filter is used directly as an equality query; no field-existence check
// is performed, so a key absent on every document simply matches nothing.
func (m *Mongo) GetMany(ctx context.Context, collection string, filter Filter, skip, limit int64, sortSpec Sort) ([]Record, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}

	findOpts := options.Find()
	if skip > 0 {
		findOpts.SetSkip(skip)
	}
	if limit > 0 {
		findOpts.SetLimit(limit)
	}
	if len(sortSpec) > 0 {
		findOpts.SetSort(sortDocument(sortSpec))
	}

	cursor, err := m.db.Collection(collection).Find(ctx, queryDocument(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]Record, 0)
	for cursor.Next(ctx) {
		var doc map[string]any
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, normalizeRecord(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts a new document, then re-reads it by its assigned
// identifier to return the normalized stored form. The insert and the
// read-back are two round trips; a concurrent write between them can show
// up in the returned record.
func (m *Mongo) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}

	doc := make(map[string]any, len(rec))
	for k, v := range rec {
		doc[k] = v
	}
	if id, ok := doc["id"]; ok {
		delete(doc, "id")
		if s, isString := id.(string); isString {
			doc["_id"] = nativeID(s)
		} else {
			doc["_id"] = id
		}
	}

	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	var stored map[string]any
	if err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&stored); err != nil {
		return nil, err
	}
	return normalizeRecord(stored), nil
}

// Update applies a partial $set of the supplied fields, then re-reads the
// document to return the post-update state, or (nil, nil) when no document
// has that identifier.
func (m *Mongo) Update(ctx context.Context, collection, id string, changes Record) (Record, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}

	set := make(map[string]any, len(changes))
	for k, v := range changes {
		if k == "id" {
			continue
		}
		set[k] = v
	}

	if len(set) > 0 {
		_, err := m.db.Collection(collection).UpdateOne(ctx,
			bson.M{"_id": nativeID(id)},
			bson.M{"$set": set},
		)
		if err != nil {
			return nil, err
		}
	}
	return m.GetByID(ctx, collection, id)
}

// Delete removes the document with the given identifier and reports
// whether exactly one document was removed.
func (m *Mongo) Delete(ctx context.Context, collection, id string) (bool, error) {
	if m.db == nil {
		return false, ErrNotConnected
	}

	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": nativeID(id)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of documents matching filter.
func (m *Mongo) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	if m.db == nil {
		return 0, ErrNotConnected
	}
	return m.db.Collection(collection).CountDocuments(ctx, queryDocument(filter))
}

// nativeID converts an external string identifier into the store's native
// identifier type. Valid ObjectID hex strings become ObjectIDs; anything
// else is matched verbatim.
func nativeID(id string) any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// queryDocument converts a filter map into a driver query predicate.
func queryDocument(filter Filter) bson.M {
	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	return q
}

// sortDocument flattens a sort specification into a list of
// (field, direction) pairs using the ±1 driver convention. The pair order
// follows map iteration and is only deterministic for single-field sorts.
func sortDocument(sortSpec Sort) bson.D {
	doc := bson.D{}
	for field, direction := range sortSpec {
		order := 1
		if direction == SortDesc {
			order = -1
		}
		doc = append(doc, bson.E{Key: field, Value: order})
	}
	return doc
}

// normalizeRecord strips the native identifier, surfaces it as a string
// "id" field, and converts BSON scalar types to standard Go types so
// records stay backend-neutral.
func normalizeRecord(doc map[string]any) Record {
	rec := make(Record, len(doc))
	for k, v := range doc {
		rec[k] = normalizeValue(v)
	}
	if raw, ok := rec["_id"]; ok {
		delete(rec, "_id")
		if s, isString := raw.(string); isString {
			rec["id"] = s
		} else {
			rec["id"] = fmt.Sprintf("%v", raw)
		}
	}
	return rec
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case bson.ObjectID:
		return val.Hex()
	case bson.DateTime:
		return val.Time().UTC()
	case bson.D:
		nested := make(map[string]any, len(val))
		for _, elem := range val {
			nested[elem.Key] = normalizeValue(elem.Value)
		}
		return nested
	case bson.A:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = normalizeValue(item)
		}
		return arr
	case map[string]any:
		nested := make(map[string]any, len(val))
		for k, item := range val {
			nested[k] = normalizeValue(item)
		}
		return nested
	default:
		return v
	}
}

package database

import (
	"context"
	"fmt"

	"taskapi/internal/config"
)

// Backend identifies a supported database backend.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongodb"
)

// OpenConfig carries the backend selection plus the backend-specific
// parameters: connection settings and a schema registry for the relational
// kind, a connection string and database name for the document kind.
type OpenConfig struct {
	Backend Backend

	Postgres config.DatabaseConfig
	Schemas  map[string]Schema

	MongoURI      string
	MongoDatabase string
}

// Open constructs the adapter for the selected backend, connects it, and
// returns it behind the uniform contract. Configuration problems (unknown
// backend, missing schema registry, missing database name) fail before any
// connection attempt.
func Open(ctx context.Context, cfg OpenConfig) (Client, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func newClient(cfg OpenConfig) (Client, error) {
	switch cfg.Backend {
	case BackendPostgres:
		if len(cfg.Schemas) == 0 {
			return nil, fmt.Errorf("schema registry is required for the %s backend", BackendPostgres)
		}
		return NewPostgres(cfg.Postgres, cfg.Schemas), nil
	case BackendMongo:
		if cfg.MongoURI == "" || cfg.MongoDatabase == "" {
			return nil, fmt.Errorf("connection string and database name are required for the %s backend", BackendMongo)
		}
		return NewMongo(cfg.MongoURI, cfg.MongoDatabase), nil
	default:
		return nil, fmt.Errorf("unsupported database backend: %q", cfg.Backend)
	}
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/config"
)

func TestNewClient(t *testing.T) {
	t.Run("postgres requires a schema registry", func(t *testing.T) {
		_, err := newClient(OpenConfig{Backend: BackendPostgres})
		assert.ErrorContains(t, err, "schema registry is required")
	})

	t.Run("postgres", func(t *testing.T) {
		client, err := newClient(OpenConfig{
			Backend:  BackendPostgres,
			Postgres: config.DatabaseConfig{Host: "localhost"},
			Schemas:  map[string]Schema{"tasks": testSchema},
		})
		require.NoError(t, err)
		assert.IsType(t, &Postgres{}, client)
	})

	t.Run("mongodb requires uri and database name", func(t *testing.T) {
		_, err := newClient(OpenConfig{Backend: BackendMongo, MongoURI: "mongodb://localhost:27017"})
		assert.ErrorContains(t, err, "database name")

		_, err = newClient(OpenConfig{Backend: BackendMongo, MongoDatabase: "app_db"})
		assert.Error(t, err)
	})

	t.Run("mongodb", func(t *testing.T) {
		client, err := newClient(OpenConfig{
			Backend:       BackendMongo,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "app_db",
		})
		require.NoError(t, err)
		assert.IsType(t, &Mongo{}, client)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := newClient(OpenConfig{Backend: "cassandra"})
		assert.ErrorContains(t, err, "unsupported database backend")
	})
}

// Package postgres provides a store.Backend that keeps the serialized task
// collection in a PostgreSQL row, plus the embedded goose migrations that
// create its table. The collection is still one document; the database only
// replaces the file as the medium.
package postgres

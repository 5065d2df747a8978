package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgreSQL error codes
const (
	// insufficientPrivilegeCode is returned when the role may not write the table
	insufficientPrivilegeCode = "42501"

	// readOnlyTransactionCode is returned by hot standbys and read-only sessions
	readOnlyTransactionCode = "25006"

	// undefinedTableCode is returned when migrations have not been applied
	undefinedTableCode = "42P01"
)

// MapWriteError maps a database error raised while saving the collection to
// the store error taxonomy. Permission and read-only failures become
// store.ErrNotWritable; everything else is store.ErrWriteFailed.
func MapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case insufficientPrivilegeCode, readOnlyTransactionCode:
			return fmt.Errorf("%w: %v", store.ErrNotWritable, err)
		}
	}

	return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
}

// MapReadError maps a database error raised while loading the collection.
func MapReadError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
		return fmt.Errorf("%w: table missing, run migrations: %v", store.ErrReadFailed, err)
	}

	return fmt.Errorf("%w: %v", store.ErrReadFailed, err)
}

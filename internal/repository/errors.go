package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error classes used to classify write failures. The store's own
// constraints are the authoritative signal; the Exists pre-checks in the
// service layer only provide friendlier messages on the fast path.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique or primary key conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a broken reference to a parent row.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}

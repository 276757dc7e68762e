// Package postgres provides PostgreSQL implementations of the store
// interfaces using the pgx stdlib driver over database/sql.
package postgres

import (
	"github.com/google/uuid"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolationCode = "23503"
	pgUniqueViolationCode     = "23505"
)

// uuidStrings converts a UUID slice to strings for use as a uuid[] query
// parameter; the driver encodes []string natively and the query casts it.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

package database

import (
	"strings"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is the database rejecting a
// duplicate key. Postgres signals 23505; the sqlite shim used in tests only
// gives us the message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

package repositories

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// uniqueViolation reports whether err is a unique-constraint violation and
// returns an identifier for the violated constraint. On PostgreSQL this is
// the constraint name (pq.Error.Constraint); on SQLite, used by the test
// databases, the driver message carries the table.column instead.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolationCode {
			return pqErr.Constraint, true
		}
		return "", false
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}

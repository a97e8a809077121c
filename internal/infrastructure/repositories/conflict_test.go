package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	constraint, ok := uniqueViolation(nil)
	assert.False(t, ok)
	assert.Empty(t, constraint)

	constraint, ok = uniqueViolation(errors.New("connection refused"))
	assert.False(t, ok)
	assert.Empty(t, constraint)

	pqErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	constraint, ok = uniqueViolation(pqErr)
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	constraint, ok = uniqueViolation(fmt.Errorf("create: %w", pqErr))
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	_, ok = uniqueViolation(&pq.Error{Code: "23503", Constraint: "documents_customer_id_fkey"})
	assert.False(t, ok)

	constraint, ok = uniqueViolation(errors.New("UNIQUE constraint failed: customers.gstin"))
	assert.True(t, ok)
	assert.Contains(t, constraint, "gstin")
}

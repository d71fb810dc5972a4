package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintDetection(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "groups_community_id_fkey"}

	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "users_username_key"))
	name, ok := ForeignKeyConstraint(fmt.Errorf("insert: %w", fk))
	assert.True(t, ok)
	assert.Equal(t, "groups_community_id_fkey", name)
	_, ok = ForeignKeyConstraint(dup)
	assert.False(t, ok)
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}

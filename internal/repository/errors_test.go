package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/grievance-service/internal/repository"
)

func TestIsUniqueViolationMatchesConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: repository.CommentUniqueConstraint}

	assert.True(t, repository.IsUniqueViolation(err, repository.CommentUniqueConstraint))
	assert.False(t, repository.IsUniqueViolation(err, repository.ReplyUniqueConstraint))
}

func TestIsUniqueViolationAnyConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_key"}

	assert.True(t, repository.IsUniqueViolation(err, ""))
}

func TestIsUniqueViolationIgnoresOtherCodes(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: repository.CommentUniqueConstraint}

	assert.False(t, repository.IsUniqueViolation(fk, repository.CommentUniqueConstraint))
}

func TestIsUniqueViolationWrappedError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: repository.ComplaintKeyConstraint}
	wrapped := fmt.Errorf("insert complaint: %w", pgErr)

	assert.True(t, repository.IsUniqueViolation(wrapped, repository.ComplaintKeyConstraint))
}

func TestIsUniqueViolationNonPgError(t *testing.T) {
	assert.False(t, repository.IsUniqueViolation(errors.New("boom"), repository.ComplaintKeyConstraint))
	assert.False(t, repository.IsUniqueViolation(nil, repository.ComplaintKeyConstraint))
}

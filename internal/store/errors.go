package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrConstraint matches any *ConstraintError via errors.Is.
var ErrConstraint = errors.New("constraint violation")

// ErrNotFound is returned by single-row lookups that match nothing.
// List, update and delete operations never return it.
var ErrNotFound = errors.New("not found")

// ConstraintKind categorizes constraint violations.
type ConstraintKind string

const (
	// ConstraintUnique indicates a duplicate value in a UNIQUE column or pair.
	ConstraintUnique ConstraintKind = "UNIQUE"

	// ConstraintNotNull indicates a missing required value.
	ConstraintNotNull ConstraintKind = "NOT_NULL"

	// ConstraintForeignKey indicates a reference to a missing student or course.
	ConstraintForeignKey ConstraintKind = "FOREIGN_KEY"

	// ConstraintOther covers CHECK and any other constraint class.
	ConstraintOther ConstraintKind = "OTHER"
)

// ConstraintError reports a write rejected by a schema constraint.
// The rejected statement left the store unchanged.
type ConstraintError struct {
	// Op is the facade operation, e.g. "add student".
	Op string

	// Kind is the constraint class.
	Kind ConstraintKind

	// Rule is the engine's description, e.g.
	// "UNIQUE constraint failed: students.email".
	Rule string

	Err error
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Rule)
}

// Unwrap returns the driver error.
func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConstraint.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

// IsConstraint returns true if err is a constraint violation.
// Uses errors.Is to handle wrapped errors.
func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}

// wrapErr attaches the operation name to err, converting SQLite constraint
// failures into *ConstraintError.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &ConstraintError{
			Op:   op,
			Kind: constraintKind(sqliteErr.ExtendedCode),
			Rule: sqliteErr.Error(),
			Err:  err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func constraintKind(code sqlite3.ErrNoExtended) ConstraintKind {
	switch code {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ConstraintUnique
	case sqlite3.ErrConstraintNotNull:
		return ConstraintNotNull
	case sqlite3.ErrConstraintForeignKey:
		return ConstraintForeignKey
	default:
		return ConstraintOther
	}
}

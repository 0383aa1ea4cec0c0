// Package store provides the SQLite-backed grade records facade.
//
// The store keeps three tables:
//   - students: unique name and email, GPA defaulting to 0.0
//   - courses: unique course code, credits defaulting to 3
//   - grades: one row per (student, course) pair, carrying letter, score
//     and enrollment date
//
// # Connection Scope
//
// A Store holds a path and options, never a live connection. Every
// operation opens the database, runs one statement (or one transaction for
// the cascading student delete) and closes it before returning, on error
// paths too. Because of this, ":memory:" paths are not supported: each
// operation would see a fresh empty database.
//
// # Errors
//
//   - Constraint violations (UNIQUE, NOT NULL, FOREIGN KEY) are returned as
//     *ConstraintError and match errors.Is(err, ErrConstraint). The failed
//     statement is not committed.
//   - Any other failure (unopenable file, missing schema) is a storage
//     failure, wrapped with the operation name.
//   - Reads, updates and deletes that match nothing are not errors: they
//     return empty slices or zero affected rows.
//
// # Database Configuration
//
// Connections are opened with foreign_keys=ON and a busy timeout; WAL
// journal mode is optional. All user-supplied values are bound as
// parameters.
package store

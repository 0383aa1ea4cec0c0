package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/records"
)

// createTestStore creates an initialized store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "data", "grades.db"), Options{})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

// mustAddStudent inserts a student and fails the test on error.
func mustAddStudent(t *testing.T, s *Store, name, email, date string) int64 {
	t.Helper()
	id, err := s.AddStudent(context.Background(), name, email, records.MustParseDate(date))
	require.NoError(t, err)
	return id
}

// mustAddCourse inserts a course and fails the test on error.
func mustAddCourse(t *testing.T, s *Store, code, name string, credits int) int64 {
	t.Helper()
	id, err := s.AddCourse(context.Background(), code, name, credits)
	require.NoError(t, err)
	return id
}

// mustAddGrade inserts a grade and fails the test on error.
func mustAddGrade(t *testing.T, s *Store, studentID, courseID int64, letter string, score float64, date string) int64 {
	t.Helper()
	id, err := s.AddGrade(context.Background(), studentID, courseID, letter, score, records.MustParseDate(date))
	require.NoError(t, err)
	return id
}

// countRows returns the number of rows in table using a direct connection.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	ctx := context.Background()
	db, err := s.open(ctx, false)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

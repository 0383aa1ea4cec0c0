package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/records"
)

func TestListStudents_Empty(t *testing.T) {
	s := createTestStore(t)

	students, err := s.ListStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students, "empty result is a slice, not nil")
	assert.Empty(t, students)
}

func TestListStudents_OrderedByNameCaseSensitive(t *testing.T) {
	s := createTestStore(t)

	mustAddStudent(t, s, "carol", "carol@x.com", "2025-01-17")
	mustAddStudent(t, s, "Bob", "bob@x.com", "2025-01-16")
	mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")

	students, err := s.ListStudents(context.Background())
	require.NoError(t, err)

	names := make([]string, len(students))
	for i, st := range students {
		names[i] = st.Name
	}
	// Upper case sorts before lower case in binary order
	assert.Equal(t, []string{"Alice", "Bob", "carol"}, names)
}

func TestListStudents_RoundTripsInsertedValues(t *testing.T) {
	s := createTestStore(t)

	id := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")

	students, err := s.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, id, students[0].ID)
	assert.Equal(t, "alice@x.com", students[0].Email)
	assert.Equal(t, records.MustParseDate("2025-01-15"), students[0].EnrollmentDate)
}

func TestGetStudent_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetStudent(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsConstraint(err))
}

func TestListCourses_OrderedByCode(t *testing.T) {
	s := createTestStore(t)

	mustAddCourse(t, s, "MATH201", "Calculus II", 4)
	mustAddCourse(t, s, "CS101", "Intro", 3)
	mustAddCourse(t, s, "ENG102", "English Composition", 3)

	courses, err := s.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, "ENG102", courses[1].Code)
	assert.Equal(t, "MATH201", courses[2].Code)
	assert.Equal(t, 4, courses[2].Credits)
}

func TestStudentCourses_OrderedByEnrollmentDate(t *testing.T) {
	s := createTestStore(t)

	sid := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")
	late := mustAddCourse(t, s, "MATH201", "Calculus II", 4)
	early := mustAddCourse(t, s, "CS101", "Intro", 3)
	mustAddGrade(t, s, sid, late, "B+", 87, "2025-01-21")
	mustAddGrade(t, s, sid, early, "A", 95.5, "2025-01-20")

	history, err := s.StudentCourses(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "CS101", history[0].CourseCode)
	assert.Equal(t, "MATH201", history[1].CourseCode)
	assert.Equal(t, "Alice", history[1].StudentName)
}

func TestStudentCourses_Empty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sid := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")

	history, err := s.StudentCourses(ctx, sid)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	history, err = s.StudentCourses(ctx, 404)
	require.NoError(t, err, "unknown student is not an error")
	assert.Empty(t, history)
}

func TestGradesInRange_InclusiveBounds(t *testing.T) {
	s := createTestStore(t)

	start := records.MustParseDate("2025-01-20")
	end := records.MustParseDate("2025-01-22")

	courses := []int64{
		mustAddCourse(t, s, "C1", "Course 1", 3),
		mustAddCourse(t, s, "C2", "Course 2", 3),
		mustAddCourse(t, s, "C3", "Course 3", 3),
		mustAddCourse(t, s, "C4", "Course 4", 3),
	}
	sid := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")

	mustAddGrade(t, s, sid, courses[0], "A", 90, start.AddDays(-1).String()) // day before start
	mustAddGrade(t, s, sid, courses[1], "A", 90, start.String())             // on start
	mustAddGrade(t, s, sid, courses[2], "A", 90, end.String())               // on end
	mustAddGrade(t, s, sid, courses[3], "A", 90, end.AddDays(1).String())    // day after end

	rows, err := s.GradesInRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Course 2", rows[0].CourseName)
	assert.Equal(t, start, rows[0].EnrolledDate)
	assert.Equal(t, "Course 3", rows[1].CourseName)
	assert.Equal(t, end, rows[1].EnrolledDate)
}

func TestGradesInRange_Empty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rows, err := s.GradesInRange(ctx, records.MustParseDate("2025-01-01"), records.MustParseDate("2025-12-31"))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	sid := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")
	cid := mustAddCourse(t, s, "CS101", "Intro", 3)
	mustAddGrade(t, s, sid, cid, "A", 95.5, "2025-01-20")

	// Reversed bounds match nothing
	rows, err = s.GradesInRange(ctx, records.MustParseDate("2025-01-31"), records.MustParseDate("2025-01-01"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGradesInRange_SpansMonths(t *testing.T) {
	s := createTestStore(t)

	sid := mustAddStudent(t, s, "Alice", "alice@x.com", "2025-01-15")
	jan := mustAddCourse(t, s, "JAN", "January", 3)
	feb := mustAddCourse(t, s, "FEB", "February", 3)
	mustAddGrade(t, s, sid, feb, "B", 80, "2025-02-03")
	mustAddGrade(t, s, sid, jan, "A", 90, "2025-01-30")

	rows, err := s.GradesInRange(context.Background(),
		records.MustParseDate("2025-01-28"), records.MustParseDate("2025-02-05"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "January", rows[0].CourseName)
	assert.Equal(t, "February", rows[1].CourseName)
	assert.Equal(t, "Alice", rows[1].StudentName)
	assert.Equal(t, "B", rows[1].Letter)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gradebook/internal/records"
)

// ListStudents returns every student ordered by name (binary collation,
// so the order is case-sensitive).
//
// Returns an empty slice (not nil) if there are no students.
func (s *Store) ListStudents(ctx context.Context) ([]records.Student, error) {
	var students []records.Student
	err := s.query(ctx, func(rows *sql.Rows) error {
		var st records.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.GPA, &st.EnrollmentDate, &st.CreatedAt); err != nil {
			return fmt.Errorf("scan student: %w", err)
		}
		students = append(students, st)
		return nil
	}, `
		SELECT id, name, email, gpa, enrollment_date, created_at
		FROM students
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, wrapErr("list students", err)
	}

	if students == nil {
		students = []records.Student{}
	}
	return students, nil
}

// GetStudent retrieves a single student by ID.
// Returns an error matching ErrNotFound if the student does not exist.
func (s *Store) GetStudent(ctx context.Context, id int64) (records.Student, error) {
	var st records.Student
	err := s.withDB(ctx, false, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `
			SELECT id, name, email, gpa, enrollment_date, created_at
			FROM students
			WHERE id = ?
		`, id).Scan(&st.ID, &st.Name, &st.Email, &st.GPA, &st.EnrollmentDate, &st.CreatedAt)
	})
	if err != nil {
		return records.Student{}, wrapErr("get student", err)
	}
	return st, nil
}

// ListCourses returns every course ordered by course code.
//
// Returns an empty slice (not nil) if there are no courses.
func (s *Store) ListCourses(ctx context.Context) ([]records.Course, error) {
	var courses []records.Course
	err := s.query(ctx, func(rows *sql.Rows) error {
		var c records.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
		return nil
	}, `
		SELECT id, course_code, course_name, credits, created_at
		FROM courses
		ORDER BY course_code COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, wrapErr("list courses", err)
	}

	if courses == nil {
		courses = []records.Course{}
	}
	return courses, nil
}

// StudentCourses returns a student's grades joined with the student and
// course rows, ordered by enrollment date.
//
// Returns an empty slice if the student has no grades or does not exist.
func (s *Store) StudentCourses(ctx context.Context, studentID int64) ([]records.CourseHistoryRow, error) {
	var history []records.CourseHistoryRow
	err := s.query(ctx, func(rows *sql.Rows) error {
		var r records.CourseHistoryRow
		if err := rows.Scan(&r.StudentName, &r.CourseName, &r.CourseCode, &r.Letter, &r.Score, &r.EnrolledDate); err != nil {
			return fmt.Errorf("scan course history: %w", err)
		}
		history = append(history, r)
		return nil
	}, `
		SELECT s.name, c.course_name, c.course_code, g.grade, g.score, g.enrolled_date
		FROM grades g
		JOIN students s ON g.student_id = s.id
		JOIN courses c ON g.course_id = c.id
		WHERE s.id = ?
		ORDER BY g.enrolled_date ASC, g.id ASC
	`, studentID)
	if err != nil {
		return nil, wrapErr("student courses", err)
	}

	if history == nil {
		history = []records.CourseHistoryRow{}
	}
	return history, nil
}

// GradesInRange returns grades whose enrollment date lies in [start, end],
// both bounds inclusive, ordered by enrollment date.
//
// Returns an empty slice when nothing matches, including when start is
// after end.
func (s *Store) GradesInRange(ctx context.Context, start, end records.Date) ([]records.RangeRow, error) {
	var matches []records.RangeRow
	err := s.query(ctx, func(rows *sql.Rows) error {
		var r records.RangeRow
		if err := rows.Scan(&r.StudentName, &r.CourseName, &r.Letter, &r.EnrolledDate); err != nil {
			return fmt.Errorf("scan grade: %w", err)
		}
		matches = append(matches, r)
		return nil
	}, `
		SELECT s.name, c.course_name, g.grade, g.enrolled_date
		FROM grades g
		JOIN students s ON g.student_id = s.id
		JOIN courses c ON g.course_id = c.id
		WHERE g.enrolled_date BETWEEN ? AND ?
		ORDER BY g.enrolled_date ASC, g.id ASC
	`, start, end)
	if err != nil {
		return nil, wrapErr("grades in range", err)
	}

	if matches == nil {
		matches = []records.RangeRow{}
	}
	return matches, nil
}

// query runs a SELECT and calls scan once per row.
func (s *Store) query(ctx context.Context, scan func(*sql.Rows) error, query string, args ...any) error {
	return s.withDB(ctx, false, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate rows: %w", err)
		}
		return nil
	})
}

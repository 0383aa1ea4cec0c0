package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gradebook/internal/records"
)

// AddStudent inserts a student and returns its ID.
// GPA takes the schema default. A duplicate name or email returns a
// *ConstraintError and inserts nothing.
func (s *Store) AddStudent(ctx context.Context, name, email string, enrolled records.Date) (int64, error) {
	id, err := s.insert(ctx, `
		INSERT INTO students (name, email, enrollment_date)
		VALUES (?, ?, ?)
	`,
		name,
		email,
		enrolled,
	)
	if err != nil {
		return 0, wrapErr("add student", err)
	}

	s.logger.Debug("student added", "id", id, "name", name)
	return id, nil
}

// AddCourse inserts a course and returns its ID.
// A duplicate course code returns a *ConstraintError and inserts nothing.
func (s *Store) AddCourse(ctx context.Context, code, name string, credits int) (int64, error) {
	id, err := s.insert(ctx, `
		INSERT INTO courses (course_code, course_name, credits)
		VALUES (?, ?, ?)
	`,
		code,
		name,
		credits,
	)
	if err != nil {
		return 0, wrapErr("add course", err)
	}

	s.logger.Debug("course added", "id", id, "code", code)
	return id, nil
}

// AddGrade records a student's grade in a course and returns its ID.
//
// Returns a *ConstraintError when the student already has a grade for the
// course, or when either reference does not exist (foreign keys are
// enforced on every connection).
func (s *Store) AddGrade(ctx context.Context, studentID, courseID int64, letter string, score float64, enrolled records.Date) (int64, error) {
	id, err := s.insert(ctx, `
		INSERT INTO grades (student_id, course_id, grade, score, enrolled_date)
		VALUES (?, ?, ?, ?, ?)
	`,
		studentID,
		courseID,
		letter,
		score,
		enrolled,
	)
	if err != nil {
		return 0, wrapErr("add grade", err)
	}

	s.logger.Debug("grade added", "id", id, "student_id", studentID, "course_id", courseID)
	return id, nil
}

// UpdateStudentGPA sets a student's GPA.
// Returns the number of rows changed; 0 means no such student and is not
// an error.
func (s *Store) UpdateStudentGPA(ctx context.Context, studentID int64, gpa float64) (int64, error) {
	n, err := s.exec(ctx, `UPDATE students SET gpa = ? WHERE id = ?`, gpa, studentID)
	if err != nil {
		return 0, wrapErr("update student gpa", err)
	}

	s.logger.Debug("student gpa updated", "student_id", studentID, "rows", n)
	return n, nil
}

// UpdateGrade sets the letter grade and score of one (student, course)
// grade in a single statement. Returns the number of rows changed.
func (s *Store) UpdateGrade(ctx context.Context, studentID, courseID int64, letter string, score float64) (int64, error) {
	n, err := s.exec(ctx, `
		UPDATE grades SET grade = ?, score = ?
		WHERE student_id = ? AND course_id = ?
	`,
		letter,
		score,
		studentID,
		courseID,
	)
	if err != nil {
		return 0, wrapErr("update grade", err)
	}

	s.logger.Debug("grade updated", "student_id", studentID, "course_id", courseID, "rows", n)
	return n, nil
}

// DeleteStudent removes a student together with all of its grades.
//
// Both deletes run in one transaction: a failure after the grades are
// removed rolls them back, so no half-deleted student is ever visible.
// A missing student deletes nothing and is not an error.
func (s *Store) DeleteStudent(ctx context.Context, studentID int64) (records.DeleteResult, error) {
	var result records.DeleteResult

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM grades WHERE student_id = ?`, studentID)
		if err != nil {
			return fmt.Errorf("delete grades: %w", err)
		}
		if result.Grades, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("delete grades: rows affected: %w", err)
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, studentID)
		if err != nil {
			return fmt.Errorf("delete student row: %w", err)
		}
		if result.Students, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("delete student row: rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return records.DeleteResult{}, wrapErr("delete student", err)
	}

	s.logger.Debug("student deleted", "student_id", studentID, "grades", result.Grades, "students", result.Students)
	return result, nil
}

// DeleteGrade removes the grade for one (student, course) pair.
// Returns the number of rows removed.
func (s *Store) DeleteGrade(ctx context.Context, studentID, courseID int64) (int64, error) {
	n, err := s.exec(ctx, `DELETE FROM grades WHERE student_id = ? AND course_id = ?`, studentID, courseID)
	if err != nil {
		return 0, wrapErr("delete grade", err)
	}

	s.logger.Debug("grade deleted", "student_id", studentID, "course_id", courseID, "rows", n)
	return n, nil
}

// insert runs one INSERT and returns the new row's surrogate key.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := s.withDB(ctx, false, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	return id, err
}

// exec runs one UPDATE or DELETE and returns the affected row count.
func (s *Store) exec(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := s.withDB(ctx, false, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return n, err
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gradebook/internal/records"
)

// AverageGPA returns the mean GPA over all students.
// Returns nil when there are no students, so an empty class is never
// confused with a 0.0 average.
func (s *Store) AverageGPA(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := s.withDB(ctx, false, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT AVG(gpa) FROM students`).Scan(&avg)
	})
	if err != nil {
		return nil, wrapErr("average gpa", err)
	}
	return nullToFloatPtr(avg), nil
}

// CourseStats returns, for every course, the number of grades and their
// mean score. Courses without grades are included with a zero count and a
// nil average.
//
// Rows are ordered by mean score descending; SQLite sorts NULL averages
// last in descending order. Ties fall back to course ID.
func (s *Store) CourseStats(ctx context.Context) ([]records.CourseStat, error) {
	var stats []records.CourseStat
	err := s.query(ctx, func(rows *sql.Rows) error {
		var (
			st  records.CourseStat
			avg sql.NullFloat64
		)
		if err := rows.Scan(&st.CourseID, &st.CourseName, &st.GradeCount, &avg); err != nil {
			return fmt.Errorf("scan course stats: %w", err)
		}
		st.AverageScore = nullToFloatPtr(avg)
		stats = append(stats, st)
		return nil
	}, `
		SELECT c.id, c.course_name, COUNT(g.id) AS num_students, AVG(g.score) AS avg_score
		FROM courses c
		LEFT JOIN grades g ON c.id = g.course_id
		GROUP BY c.id, c.course_name
		ORDER BY avg_score DESC, c.id ASC
	`)
	if err != nil {
		return nil, wrapErr("course stats", err)
	}

	if stats == nil {
		stats = []records.CourseStat{}
	}
	return stats, nil
}

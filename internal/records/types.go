package records

import "time"

// Schema defaults mirrored from schema.sql.
const (
	DefaultCredits = 3
	DefaultGPA     = 0.0
)

// Student is a row of the students table.
type Student struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	GPA            float64   `json:"gpa"`
	EnrollmentDate Date      `json:"enrollment_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// Course is a row of the courses table.
type Course struct {
	ID        int64     `json:"id"`
	Code      string    `json:"course_code"`
	Name      string    `json:"course_name"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// Grade is a row of the grades table: the edge between a Student and a
// Course. A (StudentID, CourseID) pair appears at most once.
type Grade struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	CourseID     int64     `json:"course_id"`
	Letter       string    `json:"grade"`
	Score        float64   `json:"score"`
	EnrolledDate Date      `json:"enrolled_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// CourseHistoryRow is one grade of a student joined with the student and
// the course it belongs to.
type CourseHistoryRow struct {
	StudentName  string  `json:"student_name"`
	CourseName   string  `json:"course_name"`
	CourseCode   string  `json:"course_code"`
	Letter       string  `json:"grade"`
	Score        float64 `json:"score"`
	EnrolledDate Date    `json:"enrolled_date"`
}

// CourseStat summarizes the grades recorded for one course.
// AverageScore is nil when the course has no grades.
type CourseStat struct {
	CourseID     int64    `json:"course_id"`
	CourseName   string   `json:"course_name"`
	GradeCount   int64    `json:"grade_count"`
	AverageScore *float64 `json:"average_score"`
}

// RangeRow is a grade returned by a date-range filter.
type RangeRow struct {
	StudentName  string `json:"student_name"`
	CourseName   string `json:"course_name"`
	Letter       string `json:"grade"`
	EnrolledDate Date   `json:"enrolled_date"`
}

// DeleteResult reports the rows removed by a cascading student delete.
type DeleteResult struct {
	Grades   int64 `json:"grades"`
	Students int64 `json:"students"`
}

package demo

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/gradebook/internal/records"
)

// numbers formats aggregate figures with English digit grouping.
var numbers = message.NewPrinter(language.English)

// RenderStudents prints the student listing.
func RenderStudents(w io.Writer, students []records.Student) {
	fmt.Fprintln(w, "\n📚 All Students:")
	if len(students) == 0 {
		fmt.Fprintln(w, "  No students found.")
		return
	}
	for _, s := range students {
		fmt.Fprintf(w, "  ID: %d, Name: %s, Email: %s, GPA: %s, Enrolled: %s\n",
			s.ID, s.Name, s.Email, FormatFloat(s.GPA), s.EnrollmentDate)
	}
}

// RenderStudentCourses prints one student's course history.
func RenderStudentCourses(w io.Writer, studentID int64, rows []records.CourseHistoryRow) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "\n📖 No courses found for student ID %d\n", studentID)
		return
	}
	fmt.Fprintf(w, "\n📖 Courses for %s:\n", rows[0].StudentName)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s (%s): %s (%s) - Enrolled: %s\n",
			r.CourseName, r.CourseCode, r.Letter, FormatFloat(r.Score), r.EnrolledDate)
	}
}

// RenderAverageGPA prints the class average, or a notice when it is
// undefined.
func RenderAverageGPA(w io.Writer, avg *float64) {
	if avg == nil {
		fmt.Fprintln(w, "No GPA data available")
		return
	}
	numbers.Fprintf(w, "\n📊 Class Average GPA: %.2f\n", *avg)
}

// RenderCourseStats prints per-course grade counts and mean scores.
func RenderCourseStats(w io.Writer, stats []records.CourseStat) {
	fmt.Fprintln(w, "\n📊 Course Statistics:")
	for _, s := range stats {
		avg := "N/A"
		if s.AverageScore != nil {
			avg = numbers.Sprintf("%.2f", *s.AverageScore)
		}
		numbers.Fprintf(w, "  %s: %d students, Avg Score: %s\n", s.CourseName, s.GradeCount, avg)
	}
}

// RenderGradesInRange prints the grades enrolled between start and end.
func RenderGradesInRange(w io.Writer, start, end records.Date, rows []records.RangeRow) {
	fmt.Fprintf(w, "\n📅 Grades enrolled between %s and %s:\n", start, end)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No grades found in this date range.")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s - %s: %s (%s)\n", r.StudentName, r.CourseName, r.Letter, r.EnrolledDate)
	}
}

// FormatFloat renders v with the shortest exact representation, keeping
// one decimal place for whole numbers (87 prints as "87.0").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

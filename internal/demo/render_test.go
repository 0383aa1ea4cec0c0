package demo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/gradebook/internal/records"
)

func TestRenderCourseStats(t *testing.T) {
	avg := 93.75
	big := 1234.5
	stats := []records.CourseStat{
		{CourseID: 1, CourseName: "Intro", GradeCount: 2, AverageScore: &avg},
		{CourseID: 2, CourseName: "Lecture Hall", GradeCount: 1200, AverageScore: &big},
		{CourseID: 3, CourseName: "Drawing", GradeCount: 0},
	}

	var buf bytes.Buffer
	RenderCourseStats(&buf, stats)

	assert.Equal(t, "\n📊 Course Statistics:\n"+
		"  Intro: 2 students, Avg Score: 93.75\n"+
		"  Lecture Hall: 1,200 students, Avg Score: 1,234.50\n"+
		"  Drawing: 0 students, Avg Score: N/A\n", buf.String())
}

func TestRenderAverageGPA(t *testing.T) {
	var buf bytes.Buffer
	RenderAverageGPA(&buf, nil)
	assert.Equal(t, "No GPA data available\n", buf.String())

	buf.Reset()
	zero := 0.0
	RenderAverageGPA(&buf, &zero)
	assert.Equal(t, "\n📊 Class Average GPA: 0.00\n", buf.String())
}

func TestRenderStudents_TextUnchanged(t *testing.T) {
	var buf bytes.Buffer
	RenderStudents(&buf, []records.Student{{
		ID:             1,
		Name:           "José",
		Email:          "jose@x.com",
		EnrollmentDate: records.MustParseDate("2025-01-15"),
	}})

	assert.Contains(t, buf.String(), "Name: José,")
}

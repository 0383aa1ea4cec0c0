package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gradebook/internal/records"
	"github.com/roach88/gradebook/internal/store"
)

// Facade is the set of store operations a scenario can call.
// *store.Store implements it.
type Facade interface {
	Path() string
	Initialize(ctx context.Context) error
	AddStudent(ctx context.Context, name, email string, enrolled records.Date) (int64, error)
	AddCourse(ctx context.Context, code, name string, credits int) (int64, error)
	AddGrade(ctx context.Context, studentID, courseID int64, letter string, score float64, enrolled records.Date) (int64, error)
	ListStudents(ctx context.Context) ([]records.Student, error)
	StudentCourses(ctx context.Context, studentID int64) ([]records.CourseHistoryRow, error)
	UpdateStudentGPA(ctx context.Context, studentID int64, gpa float64) (int64, error)
	UpdateGrade(ctx context.Context, studentID, courseID int64, letter string, score float64) (int64, error)
	DeleteStudent(ctx context.Context, studentID int64) (records.DeleteResult, error)
	DeleteGrade(ctx context.Context, studentID, courseID int64) (int64, error)
	AverageGPA(ctx context.Context) (*float64, error)
	CourseStats(ctx context.Context) ([]records.CourseStat, error)
	GradesInRange(ctx context.Context, start, end records.Date) ([]records.RangeRow, error)
}

var _ Facade = (*store.Store)(nil)

// Result summarizes a completed run.
type Result struct {
	RunID    string        `json:"run_id"`
	Scenario string        `json:"scenario"`
	Steps    int           `json:"steps"`
	Failures []StepFailure `json:"failures"`
}

// StepFailure records a constraint violation the run recovered from.
type StepFailure struct {
	Step  int    `json:"step"` // 1-based
	Op    string `json:"op"`
	Error string `json:"error"`
}

// Runner executes scenarios against a Facade, one step at a time.
type Runner struct {
	facade Facade
	out    io.Writer
	logger *slog.Logger
	runIDs RunIDGenerator
}

// NewRunner creates a Runner that renders to out.
// A nil logger defaults to slog.Default(); nil runIDs to UUIDv7Generator.
func NewRunner(facade Facade, out io.Writer, logger *slog.Logger, runIDs RunIDGenerator) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	return &Runner{
		facade: facade,
		out:    out,
		logger: logger,
		runIDs: runIDs,
	}
}

// Run executes every step of sc in order.
//
// A constraint violation is printed and recorded in the Result, and the
// run moves on to the next step. Any other error stops the run; the
// partial Result is returned with it.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	result := &Result{
		RunID:    r.runIDs.Generate(),
		Scenario: sc.Name,
		Failures: []StepFailure{},
	}
	logger := r.logger.With("run_id", result.RunID, "scenario", sc.Name)
	logger.Info("demo started", "steps", len(sc.Steps), "db", r.facade.Path())

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if step.Section != "" {
			r.printf("\n--- %s ---\n", step.Section)
			continue
		}

		result.Steps++
		err := r.exec(ctx, step)
		if err == nil {
			continue
		}

		var ce *store.ConstraintError
		if errors.As(err, &ce) {
			r.printf("❌ Error: %s\n", ce.Rule)
			logger.Warn("step rejected", "step", i+1, "op", step.Op, "kind", ce.Kind, "error", ce.Rule)
			result.Failures = append(result.Failures, StepFailure{Step: i + 1, Op: step.Op, Error: ce.Rule})
			continue
		}

		logger.Error("demo aborted", "step", i+1, "op", step.Op, "error", err)
		return result, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
	}

	r.printf("\n✅ Demo complete!\n")
	logger.Info("demo finished", "steps", result.Steps, "failures", len(result.Failures))
	return result, nil
}

// exec dispatches one operation step and renders its outcome.
func (r *Runner) exec(ctx context.Context, step Step) error {
	a := step.Args
	switch step.Op {
	case OpInitialize:
		if err := r.facade.Initialize(ctx); err != nil {
			return err
		}
		r.printf("✅ Database initialized: %s\n", r.facade.Path())

	case OpAddStudent:
		if _, err := r.facade.AddStudent(ctx, a.Name, a.Email, a.Date); err != nil {
			return err
		}
		r.printf("✅ Student added: %s\n", a.Name)

	case OpAddCourse:
		credits := records.DefaultCredits
		if a.Credits != nil {
			credits = *a.Credits
		}
		if _, err := r.facade.AddCourse(ctx, a.Code, a.Name, credits); err != nil {
			return err
		}
		r.printf("✅ Course added: %s\n", a.Name)

	case OpAddGrade:
		if _, err := r.facade.AddGrade(ctx, a.StudentID, a.CourseID, a.Grade, a.Score, a.Date); err != nil {
			return err
		}
		r.printf("✅ Grade recorded: Student %d, Course %d, Grade: %s\n", a.StudentID, a.CourseID, a.Grade)

	case OpListStudents:
		students, err := r.facade.ListStudents(ctx)
		if err != nil {
			return err
		}
		RenderStudents(r.out, students)

	case OpStudentCourses:
		rows, err := r.facade.StudentCourses(ctx, a.StudentID)
		if err != nil {
			return err
		}
		RenderStudentCourses(r.out, a.StudentID, rows)

	case OpUpdateStudentGPA:
		n, err := r.facade.UpdateStudentGPA(ctx, a.StudentID, a.GPA)
		if err != nil {
			return err
		}
		if n == 0 {
			r.printf("⚠️  No student with ID %d\n", a.StudentID)
			break
		}
		r.printf("✅ Student %d GPA updated to %s\n", a.StudentID, FormatFloat(a.GPA))

	case OpUpdateGrade:
		n, err := r.facade.UpdateGrade(ctx, a.StudentID, a.CourseID, a.Grade, a.Score)
		if err != nil {
			return err
		}
		if n == 0 {
			r.printf("⚠️  No grade for Student %d, Course %d\n", a.StudentID, a.CourseID)
			break
		}
		r.printf("✅ Grade updated: Student %d, Course %d now %s\n", a.StudentID, a.CourseID, a.Grade)

	case OpDeleteStudent:
		res, err := r.facade.DeleteStudent(ctx, a.StudentID)
		if err != nil {
			return err
		}
		if res.Students == 0 {
			r.printf("⚠️  No student with ID %d\n", a.StudentID)
			break
		}
		r.printf("✅ Student %d and their grades deleted (%d grades)\n", a.StudentID, res.Grades)

	case OpDeleteGrade:
		n, err := r.facade.DeleteGrade(ctx, a.StudentID, a.CourseID)
		if err != nil {
			return err
		}
		if n == 0 {
			r.printf("⚠️  No grade for Student %d, Course %d\n", a.StudentID, a.CourseID)
			break
		}
		r.printf("✅ Grade deleted: Student %d, Course %d\n", a.StudentID, a.CourseID)

	case OpAverageGPA:
		avg, err := r.facade.AverageGPA(ctx)
		if err != nil {
			return err
		}
		RenderAverageGPA(r.out, avg)

	case OpCourseStats:
		stats, err := r.facade.CourseStats(ctx)
		if err != nil {
			return err
		}
		RenderCourseStats(r.out, stats)

	case OpGradesInRange:
		rows, err := r.facade.GradesInRange(ctx, a.Start, a.End)
		if err != nil {
			return err
		}
		RenderGradesInRange(r.out, a.Start, a.End, rows)

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

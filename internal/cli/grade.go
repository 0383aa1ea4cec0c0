package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/demo"
)

// gradeKey holds the (student, course) pair parsed from positional args.
type gradeKey struct {
	studentID int64
	courseID  int64
}

func parseGradeKey(args []string) (gradeKey, error) {
	sid, err := parseID("student id", args[0])
	if err != nil {
		return gradeKey{}, err
	}
	cid, err := parseID("course id", args[1])
	if err != nil {
		return gradeKey{}, err
	}
	return gradeKey{studentID: sid, courseID: cid}, nil
}

// NewGradeCommand creates the grade command group.
func NewGradeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Record, update, delete and filter grades",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <student-id> <course-id> <grade> <score> <enrolled-date>",
		Short: "Record a grade",
		Long: `Record a student's grade in a course.

A student has at most one grade per course, and both IDs must exist;
either violation is rejected with exit code 1.

Example:
  gradebook grade add 1 2 B+ 87.0 2025-01-21`,
		Args:          exactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseGradeKey(args)
			if err != nil {
				return err
			}
			score, err := parseFloat("score", args[3])
			if err != nil {
				return err
			}
			enrolled, err := parseDate("enrolled date", args[4])
			if err != nil {
				return err
			}
			id, err := rootOpts.store().AddGrade(cmd.Context(), key.studentID, key.courseID, args[2], score, enrolled)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(IDResult{ID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Grade recorded: Student %d, Course %d, Grade: %s\n", key.studentID, key.courseID, args[2])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "update <student-id> <course-id> <grade> <score>",
		Short:         "Change a recorded grade and score",
		Args:          exactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseGradeKey(args)
			if err != nil {
				return err
			}
			score, err := parseFloat("score", args[3])
			if err != nil {
				return err
			}
			n, err := rootOpts.store().UpdateGrade(cmd.Context(), key.studentID, key.courseID, args[2], score)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(RowsResult{RowsAffected: n})
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No grade for Student %d, Course %d\n", key.studentID, key.courseID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Grade updated: Student %d, Course %d now %s\n", key.studentID, key.courseID, args[2])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <student-id> <course-id>",
		Short:         "Delete a recorded grade",
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseGradeKey(args)
			if err != nil {
				return err
			}
			n, err := rootOpts.store().DeleteGrade(cmd.Context(), key.studentID, key.courseID)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(RowsResult{RowsAffected: n})
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No grade for Student %d, Course %d\n", key.studentID, key.courseID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Grade deleted: Student %d, Course %d\n", key.studentID, key.courseID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "range <start-date> <end-date>",
		Short: "List grades enrolled between two dates, inclusive",
		Long: `List grades whose enrollment date falls between start and end,
both inclusive, ordered by date.

Example:
  gradebook grade range 2025-01-20 2025-01-22`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate("start date", args[0])
			if err != nil {
				return err
			}
			end, err := parseDate("end date", args[1])
			if err != nil {
				return err
			}
			rows, err := rootOpts.store().GradesInRange(cmd.Context(), start, end)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(rows)
			}
			demo.RenderGradesInRange(cmd.OutOrStdout(), start, end, rows)
			return nil
		},
	})

	return cmd
}

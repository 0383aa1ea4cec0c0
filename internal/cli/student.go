package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/demo"
	"github.com/roach88/gradebook/internal/store"
)

// IDResult is the JSON payload of commands that insert a row.
type IDResult struct {
	ID int64 `json:"id"`
}

// RowsResult is the JSON payload of commands that update or delete rows.
type RowsResult struct {
	RowsAffected int64 `json:"rows_affected"`
}

// NewStudentCommand creates the student command group.
func NewStudentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Add, list, update and delete students",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <email> <enrollment-date>",
		Short: "Add a student",
		Long: `Add a student. The enrollment date is YYYY-MM-DD; the GPA starts at 0.0.

Names and emails are unique: a duplicate is rejected with exit code 1.

Example:
  gradebook student add "Alice Johnson" alice@example.com 2025-01-15`,
		Args:          exactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enrolled, err := parseDate("enrollment date", args[2])
			if err != nil {
				return err
			}
			id, err := rootOpts.store().AddStudent(cmd.Context(), args[0], args[1], enrolled)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(IDResult{ID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Student added: %s (ID %d)\n", args[0], id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List students ordered by name",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := rootOpts.store().ListStudents(cmd.Context())
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(students)
			}
			demo.RenderStudents(cmd.OutOrStdout(), students)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "show <student-id>",
		Short:         "Show one student",
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("student id", args[0])
			if err != nil {
				return err
			}
			st, err := rootOpts.store().GetStudent(cmd.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				return &ExitError{Code: ExitFailure, ErrCode: ErrCodeNotFound, Message: fmt.Sprintf("student %d not found", id)}
			}
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(st)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:       %d\n", st.ID)
			fmt.Fprintf(w, "Name:     %s\n", st.Name)
			fmt.Fprintf(w, "Email:    %s\n", st.Email)
			fmt.Fprintf(w, "GPA:      %s\n", demo.FormatFloat(st.GPA))
			fmt.Fprintf(w, "Enrolled: %s\n", st.EnrollmentDate)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "courses <student-id>",
		Short:         "List a student's courses and grades",
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("student id", args[0])
			if err != nil {
				return err
			}
			rows, err := rootOpts.store().StudentCourses(cmd.Context(), id)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(rows)
			}
			demo.RenderStudentCourses(cmd.OutOrStdout(), id, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "gpa <student-id> <gpa>",
		Short:         "Set a student's GPA",
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("student id", args[0])
			if err != nil {
				return err
			}
			gpa, err := parseFloat("gpa", args[1])
			if err != nil {
				return err
			}
			n, err := rootOpts.store().UpdateStudentGPA(cmd.Context(), id, gpa)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(RowsResult{RowsAffected: n})
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No student with ID %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Student %d GPA updated to %s\n", id, demo.FormatFloat(gpa))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <student-id>",
		Short: "Delete a student and all of their grades",
		Long: `Delete a student and all of their grades in one transaction.

Example:
  gradebook student delete 3`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("student id", args[0])
			if err != nil {
				return err
			}
			res, err := rootOpts.store().DeleteStudent(cmd.Context(), id)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(res)
			}
			if res.Students == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No student with ID %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Student %d and their grades deleted (%d grades)\n", id, res.Grades)
			return nil
		},
	})

	return cmd
}

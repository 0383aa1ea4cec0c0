package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/demo"
	"github.com/roach88/gradebook/internal/records"
)

// NewCourseCommand creates the course command group.
func NewCourseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Add and list courses",
	}

	var credits int
	add := &cobra.Command{
		Use:   "add <code> <name>",
		Short: "Add a course",
		Long: `Add a course. Course codes are unique.

Example:
  gradebook course add MATH201 "Calculus II" --credits 4`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := rootOpts.store().AddCourse(cmd.Context(), args[0], args[1], credits)
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(IDResult{ID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Course added: %s (ID %d)\n", args[1], id)
			return nil
		},
	}
	add.Flags().IntVar(&credits, "credits", records.DefaultCredits, "credit hours")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List courses ordered by code",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := rootOpts.store().ListCourses(cmd.Context())
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(courses)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "\n📘 All Courses:")
			if len(courses) == 0 {
				fmt.Fprintln(w, "  No courses found.")
				return nil
			}
			for _, c := range courses {
				fmt.Fprintf(w, "  ID: %d, Code: %s, Name: %s, Credits: %d\n", c.ID, c.Code, c.Name, c.Credits)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "stats",
		Short:         "Grade count and mean score per course",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := rootOpts.store().CourseStats(cmd.Context())
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(stats)
			}
			demo.RenderCourseStats(cmd.OutOrStdout(), stats)
			return nil
		},
	})

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"registrar/internal/domain"
)

// update <id>: only flags that were set on the command line are applied, so
// --age 0 or --grade "" are real updates.
func updateCmd() *cobra.Command {
	var (
		name, grade string
		age         int
		subjects    []string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change selected fields of a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p domain.Patch
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = domain.Some(name)
			}
			if flags.Changed("age") {
				p.Age = domain.Some(age)
			}
			if flags.Changed("grade") {
				p.Grade = domain.Some(grade)
			}
			if flags.Changed("subjects") {
				p.Subjects = domain.Some(subjects)
			}
			st, err := appCtx.Records.Update(args[0], p)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVar(&age, "age", 0, "new age")
	cmd.Flags().StringVar(&grade, "grade", "", "new grade")
	cmd.Flags().StringSliceVarP(&subjects, "subjects", "s", nil, "new comma separated subjects (replaces the list)")
	return cmd
}

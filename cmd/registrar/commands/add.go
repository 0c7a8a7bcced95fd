package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// add <id> <name> <age> <grade>: insert a new record.
func addCmd() *cobra.Command {
	var subjects []string
	cmd := &cobra.Command{
		Use:   "add <id> <name> <age> <grade>",
		Short: "Add a student record",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid age %q: enter a whole number", args[2])
			}
			st, err := appCtx.Records.Add(args[0], args[1], age, args[3], subjects)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().StringSliceVarP(&subjects, "subjects", "s", nil, "comma separated subjects")
	return cmd
}

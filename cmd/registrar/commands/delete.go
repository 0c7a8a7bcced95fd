package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintf(cmd.ErrOrStderr(), "Are you sure you want to delete student %s? (y/n): ", args[0])
				answer, err := readLine(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "could not read confirmation (use --yes to skip it)")
				}
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
					return nil
				}
			}
			st, err := appCtx.Records.Delete(args[0])
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

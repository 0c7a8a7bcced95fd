package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every student record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			records := appCtx.Records.List()
			if len(records) == 0 && output == outputTable {
				fmt.Fprintln(cmd.OutOrStdout(), "No students found.")
				return nil
			}
			return renderRecords(cmd.OutOrStdout(), output, records)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

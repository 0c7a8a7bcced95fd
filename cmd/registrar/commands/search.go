package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find student records by id, name or grade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			results := appCtx.Records.Search(args[0])
			if len(results) == 0 && output == outputTable {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching students found.")
				return nil
			}
			return renderRecords(cmd.OutOrStdout(), output, results)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

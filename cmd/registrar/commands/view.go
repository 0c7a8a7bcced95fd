package commands

import (
	"github.com/spf13/cobra"

	"registrar/internal/domain"
)

func viewCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Show one student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			rec, ok := appCtx.Records.Get(args[0])
			if !ok {
				return &statusError{st: domain.Failed(domain.ErrNotFound, domain.MsgNotFound)}
			}
			return renderRecord(cmd.OutOrStdout(), output, rec)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

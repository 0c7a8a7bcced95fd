package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"registrar/internal/export"
)

// export: write all records to the configured path. The flags are bound to
// the export.* config keys; a --path without --format picks the format from
// the file extension.
func exportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all student records to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appCtx.Config.Export.Path
			format := appCtx.Config.ExportFormat()
			if cmd.Flags().Changed("path") && !cmd.Flags().Changed("format") {
				format = export.FormatForPath(path)
			}
			st, err := appCtx.Records.Export(path, format)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), st)
		},
	}
	cmd.Flags().String("path", "", "destination file (default exports/students.csv)")
	cmd.Flags().String("format", "", "csv or xlsx (default from extension or config)")
	_ = v.BindPFlag("export.path", cmd.Flags().Lookup("path"))
	_ = v.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	return cmd
}

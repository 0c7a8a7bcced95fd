package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrar/internal/services/auth"
)

// passwd: replace the login passphrase. The gate has already verified the
// current one.
func passwdCmd() *cobra.Command {
	var newPass string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the login passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if newPass == "" {
				p := prompterFor(cmd, "")
				first, err := p.ReadSecret("New passphrase: ")
				if err != nil {
					return err
				}
				second, err := p.ReadSecret("Repeat passphrase: ")
				if err != nil {
					return err
				}
				if first != second {
					return auth.ErrPassphraseMismatch
				}
				newPass = first
			}
			if err := appCtx.Auth.Enroll(newPass); err != nil {
				return err
			}
			fp, err := appCtx.Auth.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Passphrase changed.\nFingerprint: %s\n", fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&newPass, "new", "", "new passphrase (prompted when omitted)")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"registrar/internal/app"
)

var (
	configFile string
	appCtx     *app.App
)

func Execute() error {
	return newRootCmd(app.NewViper()).Execute()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "registrar",
		Short:         "Keep student records in a local JSON file",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsLogin(cmd) {
				return nil
			}
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			cfg, err := app.LoadConfig(v)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			w, err := app.NewWire(*cfg, log)
			if err != nil {
				return err
			}
			appCtx = app.New(cfg, w)
			return appCtx.Login(prompterFor(cmd, cfg.Auth.Passphrase))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Menu(cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./config.yaml or ~/.config/registrar/config.yaml)")
	pf.String("home", "", "credential dir (default ~/.registrar)")
	pf.String("data-file", "", "records file (default students.json)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.StringP("passphrase", "p", "", "login passphrase (prompted when omitted)")
	_ = v.BindPFlag("home", pf.Lookup("home"))
	_ = v.BindPFlag("data_file", pf.Lookup("data-file"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("auth.passphrase", pf.Lookup("passphrase"))

	root.AddCommand(
		addCmd(), viewCmd(), updateCmd(), deleteCmd(),
		listCmd(), searchCmd(), exportCmd(v), passwdCmd(),
	)
	return root
}

// skipsLogin reports whether cmd is cobra's own help or completion plumbing.
func skipsLogin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

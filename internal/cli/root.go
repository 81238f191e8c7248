// Package cli implements the dbsfiles command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShinyNito/FunkDBS/internal/config"
)

// NewRootCmd creates the root cobra command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var flags GlobalFlags

	cmd := &cobra.Command{
		Use:           "dbsfiles",
		Short:         "Command-line client for the DBS file service",
		Long:          "dbsfiles uploads, lists, downloads and inspects dealer files stored in DBS.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(config.FlagOverrides{
				ConfigPath:  flags.ConfigPath,
				Environment: flags.Environment,
				DealerID:    flags.DealerID,
				ClientID:    flags.ClientID,
				Scope:       flags.Scope,
			})
			if err != nil {
				return &Error{Code: ExitUsage, Message: err.Error(), Cause: err}
			}

			app := NewApp(cfg, flags, cmd.ErrOrStderr())
			cmd.SetContext(WithApp(cmd.Context(), app))
			return nil
		},
	}

	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVarP(&flags.Environment, "env", "e", "", "Environment: prod, cert or qual")
	cmd.PersistentFlags().StringVarP(&flags.DealerID, "dealer", "d", "", "Dealer ID")
	cmd.PersistentFlags().StringVar(&flags.ClientID, "client-id", "", "OAuth client ID")
	cmd.PersistentFlags().StringVar(&flags.Scope, "scope", "", "OAuth scope")
	cmd.PersistentFlags().StringVar(&flags.JQ, "jq", "", "Filter JSON output with a jq expression")
	cmd.PersistentFlags().CountVarP(&flags.Verbose, "verbose", "v", "Verbose output (-v for info, -vv for requests)")

	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newDetailsCmd())
	cmd.AddCommand(newSecretCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		PrintError(cmd.ErrOrStderr(), err)
		os.Exit(ExitCode(err))
	}
}

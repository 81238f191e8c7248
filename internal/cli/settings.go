package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShinyNito/FunkDBS/internal/config"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the client secret in the system keyring",
	}
	cmd.AddCommand(newSecretSetCmd(), newSecretDeleteCmd())
	return cmd
}

// secretTarget returns the app and the keyring coordinates for the current config.
func secretTarget(cmd *cobra.Command) (*App, string, string, error) {
	app := FromContext(cmd.Context())
	if app == nil {
		return nil, "", "", errors.New("app not initialized")
	}
	env, err := app.Environment()
	if err != nil {
		return nil, "", "", err
	}
	if app.Config.ClientID == "" {
		return nil, "", "", usageError("client id is required", "Set DBS_CLIENT_ID or pass --client-id")
	}
	return app, env.String(), app.Config.ClientID, nil
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store the client secret (read from stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, env, clientID, err := secretTarget(cmd)
			if err != nil {
				return err
			}

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return usageError("no secret on stdin", "Pipe the secret: echo $SECRET | dbsfiles secret set")
			}
			secret := strings.TrimSpace(line)
			if secret == "" {
				return usageError("secret is empty", "")
			}

			if err := app.Secrets.Save(env, clientID, secret); err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{"stored": true, "environment": env, "client_id": clientID}, app.Flags.JQ)
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored client secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, env, clientID, err := secretTarget(cmd)
			if err != nil {
				return err
			}
			if err := app.Secrets.Delete(env, clientID); err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{"deleted": true, "environment": env, "client_id": clientID}, app.Flags.JQ)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := FromContext(cmd.Context())
			if app == nil {
				return errors.New("app not initialized")
			}
			cfg := app.Config

			secret := ""
			if cfg.ClientSecret != "" {
				secret = "***"
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{
				"environment":   cfg.Environment,
				"dealer_id":     cfg.DealerID,
				"client_id":     cfg.ClientID,
				"client_secret": secret,
				"scope":         cfg.Scope,
				"token_url":     cfg.TokenURL,
				"api_base_url":  cfg.APIBaseURL,
				"timeout":       cfg.Timeout.String(),
				"sources":       cfg.Sources,
			}, app.Flags.JQ)
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := FromContext(cmd.Context())
			if app == nil {
				return errors.New("app not initialized")
			}

			path := app.Flags.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usageError(fmt.Sprintf("config file %s already exists", path), "Pass --force to replace it")
			}

			if err := config.Save(app.Config, path); err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{"path": path}, app.Flags.JQ)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

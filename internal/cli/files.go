package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ShinyNito/FunkDBS/dbs"
)

// requireApp returns the App and a ready DBS client for cmd.
func requireApp(cmd *cobra.Command) (*App, *dbs.Client, error) {
	app := FromContext(cmd.Context())
	if app == nil {
		return nil, nil, errors.New("app not initialized")
	}
	client, err := app.Client()
	if err != nil {
		return nil, nil, err
	}
	return app, client, nil
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Request a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, client, err := requireApp(cmd)
			if err != nil {
				return err
			}
			token, err := client.AccessTokenProvider().GetToken(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{"access_token": token}, app.Flags.JQ)
		},
	}
}

func newUploadCmd() *cobra.Command {
	var opts dbs.UploadOptions

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file (use - to read from stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := dbs.FromPath(args[0])
			name := opts.FileName
			if args[0] == "-" {
				if name == "" {
					return usageError("--name is required when uploading from stdin", "")
				}
				src = dbs.FromReader(cmd.InOrStdin())
			} else if name == "" {
				name = filepath.Base(args[0])
			}

			app, client, err := requireApp(cmd)
			if err != nil {
				return err
			}
			ok, err := client.Upload(cmd.Context(), src, opts)
			if err != nil {
				return err
			}
			if err := writeResult(cmd.OutOrStdout(), map[string]any{"uploaded": ok, "file_name": name}, app.Flags.JQ); err != nil {
				return err
			}
			if !ok {
				return &Error{Code: ExitAPI, Message: "upload not confirmed by server"}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.FileName, "name", "n", "", "Remote file name (default: base name of path)")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Replace an existing file with the same name")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the dealer's files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, client, err := requireApp(cmd)
			if err != nil {
				return err
			}
			files, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), files, app.Flags.JQ)
		},
	}
}

func newDownloadCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "download <name>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, client, err := requireApp(cmd)
			if err != nil {
				return err
			}
			name := args[0]

			if outPath == "-" {
				_, err := client.DownloadTo(cmd.Context(), name, cmd.OutOrStdout())
				return err
			}
			if outPath == "" {
				outPath = filepath.Base(name)
			}

			n, err := downloadFile(cmd, client, name, outPath)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), map[string]any{
				"file_name": name,
				"path":      outPath,
				"bytes":     n,
			}, app.Flags.JQ)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Destination path, - for stdout (default: file name)")
	return cmd
}

// downloadFile writes the remote file to a temp file next to path and moves it
// into place only on success, so a failed download leaves path untouched.
func downloadFile(cmd *cobra.Command, client *dbs.Client, name, path string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	n, err := client.DownloadTo(cmd.Context(), name, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", tmpPath, closeErr)
	}
	if err == nil {
		if renameErr := os.Rename(tmpPath, path); renameErr != nil {
			err = fmt.Errorf("move download to %s: %w", path, renameErr)
		}
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}
	return n, nil
}

func newDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <name>",
		Short: "Show file metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, client, err := requireApp(cmd)
			if err != nil {
				return err
			}
			details, err := client.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), details, app.Flags.JQ)
		},
	}
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/rarc/internal/archive"
	"github.com/kk-code-lab/rarc/internal/logging"
)

// newNewCmd creates the 'new' command.
func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <archive>",
		Short: "Create an empty archive and open it",
		Long: `Create a new empty archive and open it in the browser. The container
format follows the file extension: .7z, .tar, .gz and .bz2 map to their
formats, anything else becomes a ZIP archive.

Examples:
  # Empty ZIP archive
  rarc new backup.zip

  # Empty 7z archive
  rarc new backup.7z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := createArchive(cmd.Context(), path); err != nil {
				return err
			}
			return runBrowser(path)
		},
	}
}

// createArchive writes an empty archive at path, picking the container
// format from the extension.
func createArchive(ctx context.Context, path string) error {
	log, logCloser, err := logging.OpenFile(logFile, debug)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	bin, err := archive.ResolveBinary(sevenZip)
	if err != nil {
		return err
	}
	return archive.NewSevenZip(bin, log).Create(ctx, path, archive.KindForPath(path))
}

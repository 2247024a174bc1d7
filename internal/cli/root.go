// Package cli provides the command-line interface for rarc.
package cli

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/rarc/internal/app"
	"github.com/kk-code-lab/rarc/internal/logging"
)

var (
	// Global flags
	logFile  string
	sevenZip string
	debug    bool
)

// Version information - set by the main package at startup.
var Version = "v0.2.0-dev"

// NewRootCmd creates the root command. Run bare it starts the browser on the
// home screen; with an argument it opens that archive directly.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rarc [archive]",
		Short: "Terminal archive browser built on 7-Zip",
		Long: `rarc browses ZIP, 7z, tar and other 7-Zip-readable archives in the
terminal. Navigate folders, filter entries, and rename, delete, copy or
extract files without unpacking the whole archive first.

Start it with an archive path, or run it bare and press 'o' to pick one.
Press 'q' to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archivePath := ""
			if len(args) == 1 {
				archivePath = args[0]
			}
			return runBrowser(archivePath)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append structured logs to this file")
	rootCmd.PersistentFlags().StringVar(&sevenZip, "seven-zip", "", "7-Zip binary to use (default: probe 7z, 7zz, 7za)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level (needs --log-file)")

	rootCmd.Version = Version

	rootCmd.AddCommand(newNewCmd())

	return rootCmd
}

// runBrowser starts the terminal UI, opening archivePath first when set.
func runBrowser(archivePath string) error {
	log, logCloser, err := logging.OpenFile(logFile, debug)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Unrecognized locales fall back to UTF-8 so entry names still render.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	application, err := app.NewApplication(app.Config{
		ArchivePath: archivePath,
		SevenZipBin: sevenZip,
		Log:         log,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()

	application.Run()
	return nil
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

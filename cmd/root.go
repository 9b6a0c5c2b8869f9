package cmd

import (
	"errors"
	"os"

	"bundlecheck/internal/api"
	"bundlecheck/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates the bundle is valid.
	ExitCodeSuccess = 0
	// ExitCodeInvalid indicates the bundle has error-severity findings
	// (or warnings under --strict).
	ExitCodeInvalid = 1
	// ExitCodeUsage indicates a usage or engine error: bad flags, an
	// unusable bundle path, an unreadable root.
	ExitCodeUsage = 2
)

// debugFlag raises logging to debug level for every subcommand.
var debugFlag bool

// rootCmd represents the base command for the bundlecheck application.
var rootCmd = &cobra.Command{
	Use:   "bundlecheck",
	Short: "Validate extension bundles",
	Long: `bundlecheck validates extension bundles: directory trees that declare
skills, commands, agents, hooks, and MCP server configurations behind a
single manifest document.

It parses the manifest, resolves every component reference, checks server
transports, and reports every defect it finds in one pass. Validation is
read-only: nothing is executed, dialed, or written.`,
	// SilenceUsage keeps handled errors from dumping the usage text.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from main with
// the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "bundlecheck version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error to the process exit status. A finished run with
// findings is ExitCodeInvalid; everything else (flag errors, unusable
// paths) is a usage error.
func getExitCode(err error) int {
	var failed *api.ValidationFailedError
	if errors.As(err, &failed) {
		return ExitCodeInvalid
	}
	return ExitCodeUsage
}

// initLogging installs the CLI logger on stderr so stdout carries only the
// report.
func initLogging() {
	level := logging.LevelInfo
	if debugFlag {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bundlecheck/internal/api"
	"bundlecheck/internal/formatting"
	"bundlecheck/internal/template"
	"bundlecheck/internal/validator"
	"bundlecheck/internal/watch"
	"bundlecheck/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// validateOptions holds the flag values for the validate command.
type validateOptions struct {
	strict    bool
	format    string
	envFiles  []string
	parallel  int
	watchMode bool
	quiet     bool
	noColor   bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <bundle-path>",
		Short: "Validate a bundle and report every defect found",
		Long: `Validate parses the bundle manifest, resolves every declared component,
checks MCP server transports, and cross-checks the resolved set. All
defects are reported in one pass; only an unreadable manifest stops the
run early.

The report goes to stdout; progress and logs go to stderr. Exit status is
0 for a valid bundle, 1 when error-severity findings exist (or warnings
with --strict), and 2 for usage errors such as an unusable bundle path.`,
		Args: cobra.ExactArgs(1),
		// SilenceUsage keeps handled errors from dumping the usage text,
		// matching the root command's behavior when run standalone.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors for exit-status purposes")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Report format: text, json, or yaml")
	cmd.Flags().StringArrayVar(&opts.envFiles, "env-file", nil, "Extra dotenv file for placeholder lookup (repeatable)")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "Component worker count (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.watchMode, "watch", false, "Re-validate whenever the bundle changes")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Suppress the progress spinner")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, bundlePath string, opts *validateOptions) error {
	initLogging()

	if err := formatting.ValidateOutputFormat(opts.format); err != nil {
		return err
	}
	formatter, err := formatting.NewFormatter(formatting.OutputFormat(opts.format),
		formatting.Options{Color: !opts.noColor})
	if err != nil {
		return err
	}

	lookup, err := buildLookup(opts.envFiles)
	if err != nil {
		return err
	}

	runOnce := func(ctx context.Context) error {
		return validateOnce(ctx, cmd, bundlePath, opts, lookup, formatter)
	}

	if !opts.watchMode {
		return runOnce(cmd.Context())
	}

	// Watch mode: validate once up front, then re-validate after each
	// settled change until interrupted. The exit status follows the most
	// recent cycle.
	lastErr := runOnce(cmd.Context())
	if lastErr != nil && !api.IsValidationFailed(lastErr) {
		return lastErr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(bundlePath, 0)
	watchErr := watcher.Run(ctx, func(cycleID string) {
		logging.Debug("CLI", "Validation cycle %s", cycleID)
		lastErr = runOnce(ctx)
		if lastErr != nil && !api.IsValidationFailed(lastErr) {
			logging.Error("CLI", lastErr, "Validation cycle failed")
		}
	})
	if watchErr != nil && !errors.Is(watchErr, context.Canceled) {
		return watchErr
	}
	return lastErr
}

// validateOnce runs the pipeline once, renders the report to stdout, and
// converts an invalid outcome into the error the exit-code mapping expects.
func validateOnce(ctx context.Context, cmd *cobra.Command, bundlePath string, opts *validateOptions, lookup template.Lookup, formatter formatting.Formatter) error {
	var s *spinner.Spinner
	if !opts.quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Validating bundle..."
		s.Start()
	}

	outcome, err := validator.Run(ctx, validator.Options{
		BundlePath: bundlePath,
		Lookup:     lookup,
		Parallel:   opts.parallel,
	})

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	rendered, err := formatter.Format(outcome.Report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)

	report := outcome.Report
	if report.HasErrors() || (opts.strict && report.HasWarnings()) {
		return api.NewValidationFailedError(report.BundlePath,
			report.Summary.Errors, report.Summary.Warnings, opts.strict)
	}
	return nil
}

// buildLookup assembles the placeholder lookup: the process environment
// first, then each --env-file in flag order.
func buildLookup(envFiles []string) (template.Lookup, error) {
	lookups := []template.Lookup{template.EnvLookup()}
	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read env file %s: %w", file, err)
		}
		lookups = append(lookups, template.MapLookup(values))
	}
	if len(lookups) == 1 {
		return lookups[0], nil
	}
	return template.ChainLookup(lookups...), nil
}

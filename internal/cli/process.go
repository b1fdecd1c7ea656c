package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/adytools/adyprocessor/internal/cli/shared"
	"github.com/adytools/adyprocessor/internal/config"
	"github.com/adytools/adyprocessor/internal/document"
	apperrors "github.com/adytools/adyprocessor/internal/errors"
	"github.com/adytools/adyprocessor/internal/merge"
	"github.com/adytools/adyprocessor/internal/preview"
	"github.com/adytools/adyprocessor/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// processOptions holds the root command's flags.
type processOptions struct {
	input           string
	output          string
	title           string
	rewriteOnly     bool
	removeNonCustom bool
	overrides       string
	dryRun          bool
	preview         string
	quiet           bool
}

// Steps of a processing run, in order.
var (
	stepLoad  = progress.StepInfo{Name: "Load measurement", Number: 1, TotalSteps: 3}
	stepApply = progress.StepInfo{Name: "Apply channel overrides", Number: 2, TotalSteps: 3}
	stepWrite = progress.StepInfo{Name: "Write output", Number: 3, TotalSteps: 3}
)

func runProcess(cmd *cobra.Command, opts *processOptions) error {
	start := time.Now()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if opts.input == "" {
		return report(stderr, apperrors.MissingRequiredFlag("input"), shared.ExitInvalidArguments)
	}
	if opts.output == "" {
		return report(stderr, apperrors.MissingRequiredFlag("output"), shared.ExitInvalidArguments)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return report(stderr, apperrors.ConfigParseError(configPath, err), shared.ExitConfigError)
	}
	applyFlags(cmd, cfg, opts)

	if !slices.Contains(preview.Modes, cfg.Preview) {
		return report(stderr, apperrors.InvalidFlagValue("preview", cfg.Preview, preview.Modes...), shared.ExitInvalidArguments)
	}

	table, err := loadTable(cfg.OverridesFile)
	if err != nil {
		return report(stderr, apperrors.OverridesParseError(cfg.OverridesFile, err), shared.ExitConfigError)
	}

	title := opts.title
	if !cmd.Flags().Changed("title") {
		title = titleFromPath(opts.output)
	}

	if !opts.quiet {
		if opts.dryRun {
			fmt.Fprintf(stdout, "Previewing changes from %s for %s (dry run, nothing is written)...\n", titleFromPath(opts.input), titleFromPath(opts.output))
		} else {
			fmt.Fprintf(stdout, "Replacing values from %s and writing a formatted version to %s...\n", titleFromPath(opts.input), titleFromPath(opts.output))
		}
	}

	display := progress.NewDisplay(terminalCapabilities(stderr), stderr, cfg.ShowProgress && !opts.quiet)
	defer display.StopSpinner()

	// load
	if err := display.StartStep(stepLoad); err != nil {
		return err
	}
	doc, err := document.Load(opts.input)
	if err != nil {
		display.FailStep(stepLoad, err)
		cliErr, code := loadError(opts.input, err)
		return report(stderr, cliErr, code)
	}
	before, err := doc.Marshal()
	if err != nil {
		display.FailStep(stepLoad, err)
		return report(stderr, apperrors.InputUnreadable(opts.input, err), shared.ExitInputError)
	}
	display.CompleteStep(stepLoad)

	// apply
	if err := display.StartStep(stepApply); err != nil {
		return err
	}
	res, err := merge.Apply(doc, table, merge.Options{
		Title:           title,
		RewriteOnly:     opts.rewriteOnly,
		RemoveNonCustom: cfg.RemoveNonCustom,
	})
	if err != nil {
		display.FailStep(stepApply, err)
		cliErr, code := loadError(opts.input, err)
		return report(stderr, cliErr, code)
	}
	display.CompleteStep(stepApply)

	// write
	if err := display.StartStep(stepWrite); err != nil {
		return err
	}
	if opts.dryRun {
		after, err := doc.Marshal()
		if err != nil {
			display.FailStep(stepWrite, err)
			return report(stderr, apperrors.WrapWithMessage(err, apperrors.Runtime, "cannot render output"), shared.ExitFailure)
		}
		out, err := preview.Render(cfg.Preview, before, after, !color.NoColor)
		if err != nil {
			display.FailStep(stepWrite, err)
			return report(stderr, apperrors.WrapWithMessage(err, apperrors.Runtime, "cannot render preview"), shared.ExitFailure)
		}
		display.CompleteStep(stepWrite)
		fmt.Fprint(stdout, out)
	} else {
		if err := document.Write(opts.output, doc); err != nil {
			display.FailStep(stepWrite, err)
			return report(stderr, apperrors.OutputNotWritable(opts.output, err), shared.ExitOutputError)
		}
		display.CompleteStep(stepWrite)
	}

	if !opts.quiet {
		if len(res.Removed) > 0 {
			fmt.Fprintf(stdout, "Removed channels without overrides: %s\n", joinIDs(res.Removed))
		}
		fmt.Fprintf(stdout, "Finished processing in %.2f s.\n", time.Since(start).Seconds())
	}
	return nil
}

// applyFlags lets explicitly set flags win over the settings file.
func applyFlags(cmd *cobra.Command, cfg *config.Configuration, opts *processOptions) {
	flags := cmd.Flags()
	if flags.Changed("overrides") {
		cfg.OverridesFile = opts.overrides
	}
	if flags.Changed("remove-non-custom") {
		cfg.RemoveNonCustom = opts.removeNonCustom
	}
	if flags.Changed("preview") {
		cfg.Preview = opts.preview
	}
}

// loadTable returns the built-in table, or the one in path when set.
func loadTable(path string) (*channel.Table, error) {
	if path == "" {
		return channel.Default(), nil
	}
	return config.LoadOverrides(path)
}

// titleFromPath returns the file name of path without its extension.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// terminalCapabilities only reports a terminal when progress goes to the
// process's own stderr.
func terminalCapabilities(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); ok && f == os.Stderr {
		return progress.DetectTerminalCapabilities()
	}
	return progress.TerminalCapabilities{}
}

// loadError maps a document error to its user-facing form and exit code.
func loadError(path string, err error) (*apperrors.CLIError, int) {
	var (
		readErr      *document.ReadError
		parseErr     *document.ParseError
		structureErr *document.StructureError
	)
	switch {
	case errors.As(err, &readErr) && readErr.NotFound():
		return apperrors.InputNotFound(path), shared.ExitInputError
	case errors.As(err, &readErr), errors.As(err, &parseErr):
		return apperrors.InputUnreadable(path, err), shared.ExitInputError
	case errors.As(err, &structureErr):
		return apperrors.InvalidDocument(path, err), shared.ExitInvalidDocument
	default:
		return apperrors.Wrap(err, apperrors.Runtime), shared.ExitFailure
	}
}

// report prints cliErr and returns it carrying the exit code.
func report(w io.Writer, cliErr *apperrors.CLIError, code int) error {
	apperrors.FprintError(w, cliErr)
	return shared.WithExitCode(cliErr, code)
}

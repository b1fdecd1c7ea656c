// Package cli provides the Cobra-based command line for adyprocessor. The root
// command merges a channel override table into a calibration measurement file;
// subcommands inspect the table and report build information.
package cli

import (
	"github.com/adytools/adyprocessor/internal/cli/shared"
	"github.com/adytools/adyprocessor/internal/config"
	apperrors "github.com/adytools/adyprocessor/internal/errors"
	"github.com/adytools/adyprocessor/internal/preview"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupProcessing    = shared.GroupProcessing
	GroupConfiguration = shared.GroupConfiguration
)

// NewRootCmd builds the adyprocessor command tree. Each call returns a fresh
// tree, so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	opts := &processOptions{}

	rootCmd := &cobra.Command{
		Use:   "adyprocessor",
		Short: "Merge channel overrides into an Audyssey measurement file",
		Long: `adyprocessor merges a table of per-channel tuning overrides (crossover,
level trim, target curve corrections, midrange compensation and correction
limit) into an Audyssey MultEQ measurement (.ady) file and writes a
tab-indented copy. The input file is never modified.`,
		Example: `  # Apply the built-in overrides
  adyprocessor -i living-room.ady -o tuned/living-room.ady

  # Drop channels without an override and set the title
  adyprocessor -i in.ady -o out.ady --remove-non-custom -t "Movie night"

  # Only reformat the file
  adyprocessor -i in.ady -o out.ady --rewrite-only

  # Show what would change without writing
  adyprocessor -i in.ady -o out.ady --dry-run --preview diff

  # Use your own overrides
  adyprocessor channels --export yaml > tuning.yml
  adyprocessor -i in.ady -o out.ady --overrides tuning.yml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts)
		},
	}

	rootCmd.AddGroup(&cobra.Group{ID: GroupProcessing, Title: "Processing:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress status output")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Measurement file to read (required)")
	flags.StringVarP(&opts.output, "output", "o", "", "File to write (required; directories are created)")
	flags.StringVarP(&opts.title, "title", "t", "", "Title of the output measurement (default: output file name without extension)")
	flags.BoolVar(&opts.rewriteOnly, "rewrite-only", false, "Only reformat the input; apply no overrides")
	flags.BoolVar(&opts.removeNonCustom, "remove-non-custom", false, "Drop channels that have no override")
	flags.StringVar(&opts.overrides, "overrides", "", "Overrides file (YAML or JSON) to use instead of the built-in table")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the changes instead of writing the output")
	flags.StringVar(&opts.preview, "preview", preview.ModePatch, "Dry-run output format: patch or diff")

	rootCmd.AddCommand(newChannelsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command. Errors the commands have not already
// reported, such as unknown flags, are printed as argument errors.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil || shared.IsReported(err) {
		return err
	}

	apperrors.FprintError(rootCmd.ErrOrStderr(), apperrors.NewArgumentError(err.Error(),
		"Run 'adyprocessor --help' for usage"))
	return shared.WithExitCode(err, shared.ExitInvalidArguments)
}

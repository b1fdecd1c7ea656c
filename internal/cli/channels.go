package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/adytools/adyprocessor/internal/cli/shared"
	"github.com/adytools/adyprocessor/internal/config"
	apperrors "github.com/adytools/adyprocessor/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportFormats = []string{config.FormatJSON, config.FormatYAML}

func newChannelsCmd() *cobra.Command {
	var export, overrides string

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Show the channel override table",
		Long: `Show the channel override table the processor would apply: the built-in
table, or the overrides file from --overrides or the config file.

With --export the table is written as an overrides file that --overrides
accepts, which is the easiest way to start a custom table.`,
		Example: `  # List the built-in overrides
  adyprocessor channels

  # Start a custom table from the built-in one
  adyprocessor channels --export yaml > tuning.yml`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupConfiguration,
		RunE: func(cmd *cobra.Command, args []string) error {
			stderr := cmd.ErrOrStderr()

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return report(stderr, apperrors.ConfigParseError(configPath, err), shared.ExitConfigError)
			}
			if cmd.Flags().Changed("overrides") {
				cfg.OverridesFile = overrides
			}

			table, err := loadTable(cfg.OverridesFile)
			if err != nil {
				return report(stderr, apperrors.OverridesParseError(cfg.OverridesFile, err), shared.ExitConfigError)
			}

			if export == "" {
				printTable(cmd.OutOrStdout(), table)
				return nil
			}
			if !slices.Contains(exportFormats, export) {
				return report(stderr, apperrors.InvalidFlagValue("export", export, exportFormats...), shared.ExitInvalidArguments)
			}
			data, err := config.MarshalOverrides(table, export)
			if err != nil {
				return report(stderr, apperrors.Wrap(err, apperrors.Runtime), shared.ExitFailure)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "Write the table as an overrides file: json or yaml")
	cmd.Flags().StringVar(&overrides, "overrides", "", "Overrides file (YAML or JSON) to show instead of the built-in table")

	return cmd
}

// printTable lists every channel override, one field per line.
func printTable(w io.Writer, table *channel.Table) {
	id := color.New(color.FgCyan, color.Bold).SprintFunc()
	label := color.New(color.Faint).SprintFunc()

	for i, channelID := range table.IDs() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		o, _ := table.Lookup(channelID)
		fmt.Fprintln(w, id(channelID))

		field := func(name, value string) {
			fmt.Fprintf(w, "  %s %s\n", label(fmt.Sprintf("%-17s", name+":")), value)
		}
		if o.CrossoverHz != nil {
			field("crossover", fmt.Sprintf("%s Hz (small speaker)", channel.FormatCrossover(*o.CrossoverHz)))
		}
		if o.LevelDB != nil {
			field("level", channel.FormatLevel(*o.LevelDB)+" dB")
		}
		if o.MidrangeComp != nil {
			field("midrange comp", channel.FormatMidrange(*o.MidrangeComp))
		}
		if o.CorrectionLimitHz != nil {
			field("correction limit", channel.FormatRolloff(*o.CorrectionLimitHz)+" Hz")
		}
		if o.Corrections != nil {
			field("corrections", fmt.Sprintf("%d points", len(o.Corrections)))
			for _, p := range channel.FormatCurve(o.Corrections) {
				fmt.Fprintf(w, "    %s\n", p)
			}
		}
	}
	fmt.Fprintf(w, "\n%d channels\n", table.Len())
}

// joinIDs renders channel identifiers for status lines.
func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

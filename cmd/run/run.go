// Package run implements the command executing the full review pipeline over
// a RIS export file or directory.
package run

import (
	"github.com/spf13/cobra"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/analysis"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
)

// Command creates the run command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input.ris|directory]",
		Short: "Run the full review pipeline over a RIS export",
		Long: `Import bibliographic records from a RIS file or directory, deduplicate and
screen them, extract performance metrics from abstracts, and run every
configured meta-analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return analysis.RunPipeline(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVarP(&settings.Input.Recursive, "recursive", "r", false, "Import RIS files from subdirectories too")
	cmd.Flags().IntVar(&settings.Screening.YearStart, "year-start", settings.Screening.YearStart, "Earliest publication year kept, 0 to disable")
	cmd.Flags().IntVar(&settings.Screening.YearEnd, "year-end", settings.Screening.YearEnd, "Latest publication year kept, 0 to disable")
}

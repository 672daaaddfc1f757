// Package analyze implements the command running the statistical analyses
// over an existing metrics table, skipping import and screening.
package analyze

import (
	"github.com/spf13/cobra"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/analysis"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
)

// Command creates the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [metrics.csv]",
		Short: "Run the meta-analyses over an existing metrics table",
		Long: `Load a previously extracted metrics table and run the pooled, subgroup and
publication-bias analyses without re-importing the literature.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.AnalyzeTable(settings, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&settings.Analysis.Moderators, "moderators", settings.Analysis.Moderators, "Subgroup moderators: ai_method, domain, scale")

	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/cmd/analyze"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/cmd/run"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
)

// RootCommand creates and returns the root command with every subcommand
// attached.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fermentation-meta",
		Short: "Systematic-review meta-analysis of AI models in fermentation monitoring",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		run.Command(settings),
		analyze.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Command-line flags take precedence over the config file.
		if err := viper.Unmarshal(settings); err != nil {
			return err
		}
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags configures the global flags and binds them to viper keys so the
// config file and the command line share one source of truth.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringP("output", "o", viper.GetString("output.file.path"), "Report output directory")
	rootCmd.PersistentFlags().StringP("format", "f", viper.GetString("output.file.type"), "Report format: table or csv")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("output.file.path", rootCmd.PersistentFlags().Lookup("output")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("output.file.type", rootCmd.PersistentFlags().Lookup("format")); err != nil {
		panic(err)
	}
}

// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "fermentation-meta")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "fermentation-meta.log")

	viper.SetDefault("screening.yearstart", 2010)
	viper.SetDefault("screening.yearend", 2025)
	viper.SetDefault("screening.includeterms", []string{
		"fermentation",
		"machine learning",
		"deep learning",
		"neural network",
		"artificial intelligence",
		"random forest",
		"support vector",
	})
	viper.SetDefault("screening.excludeterms", []string{
		"review",
		"meta-analysis",
		"editorial",
		"erratum",
	})
	viper.SetDefault("screening.minabstractlength", 200)

	viper.SetDefault("analysis.moderators", []string{"ai_method", "scale"})

	viper.SetDefault("output.file.enabled", false)
	viper.SetDefault("output.file.path", "output/")
	viper.SetDefault("output.file.type", "table")

	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "fermentation-meta.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "meta")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "fermentation_meta")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}

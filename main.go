package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/cmd"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	initLogging(settings)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command error: %v\n", err)
		os.Exit(1)
	}
}

func initLogging(settings *conf.Settings) {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		logger, _, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, level)
		if err != nil {
			slog.Error("failed to open log file, logging to stderr", "path", settings.Main.Log.Path, "error", err)
			return
		}
		slog.SetDefault(logger)
	}
}

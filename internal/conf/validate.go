package conf

import (
	"fmt"
	"slices"
)

// validModerators are the categorical fields subgroup analysis accepts.
var validModerators = []string{"ai_method", "domain", "scale"}

// validOutputTypes are the accepted report formats.
var validOutputTypes = []string{"", "table", "csv"}

// ValidateSettings checks the loaded configuration for inconsistencies that
// would otherwise surface deep inside the pipeline.
func ValidateSettings(settings *Settings) error {
	if err := validateScreening(&settings.Screening); err != nil {
		return err
	}
	if err := validateAnalysis(&settings.Analysis); err != nil {
		return err
	}
	return validateOutput(&settings.Output)
}

func validateScreening(s *ScreeningSettings) error {
	if s.YearStart != 0 && s.YearEnd != 0 && s.YearStart > s.YearEnd {
		return fmt.Errorf("screening year range is inverted: %d-%d", s.YearStart, s.YearEnd)
	}
	if s.MinAbstractLength < 0 {
		return fmt.Errorf("screening.minabstractlength must not be negative, got %d", s.MinAbstractLength)
	}
	return nil
}

func validateAnalysis(a *AnalysisSettings) error {
	for _, m := range a.Moderators {
		if !slices.Contains(validModerators, m) {
			return fmt.Errorf("unknown subgroup moderator %q, valid values are %v", m, validModerators)
		}
	}
	return nil
}

func validateOutput(o *OutputSettings) error {
	if !slices.Contains(validOutputTypes, o.File.Type) {
		return fmt.Errorf("unknown output type %q, valid values are table and csv", o.File.Type)
	}
	if o.SQLite.Enabled && o.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.enabled requires output.sqlite.path")
	}
	if o.MySQL.Enabled {
		if o.MySQL.Username == "" || o.MySQL.Database == "" || o.MySQL.Host == "" {
			return fmt.Errorf("output.mysql.enabled requires username, database and host")
		}
	}
	return nil
}

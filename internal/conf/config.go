// config.go: settings for the meta-analysis pipeline. Defines the settings
// struct and functions to load and persist it.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for the application log file.
type LogConfig struct {
	Enabled bool   // true to write a rotated JSON log file
	Path    string // path to the log file
}

// MainSettings contains application-wide settings.
type MainSettings struct {
	Name string    // analysis node name, used to identify the run origin
	Log  LogConfig // log file settings
}

// InputConfig holds settings for bibliographic import.
type InputConfig struct {
	Path      string `yaml:"-"` // path to a RIS file or directory, set from the CLI
	Recursive bool   `yaml:"-"` // true for recursive directory import
}

// ScreeningSettings controls deduplication and eligibility screening.
type ScreeningSettings struct {
	YearStart         int      // earliest publication year kept, 0 to disable
	YearEnd           int      // latest publication year kept, 0 to disable
	IncludeTerms      []string // at least one must appear in title or abstract
	ExcludeTerms      []string // any match excludes the record
	MinAbstractLength int      // records with shorter abstracts are excluded
}

// AnalysisSettings controls which analyses run over the metrics table.
type AnalysisSettings struct {
	Moderators []string // subgroup moderators: ai_method, domain, scale
}

// FileOutputSettings controls report export.
type FileOutputSettings struct {
	Enabled bool   // true to write reports to files instead of stdout
	Path    string // report output directory
	Type    string // report format: table or csv
}

// SQLiteSettings contains settings for the SQLite result archive.
type SQLiteSettings struct {
	Enabled bool   // true to archive runs to SQLite
	Path    string // path to the SQLite database
}

// MySQLSettings contains settings for the MySQL result archive.
type MySQLSettings struct {
	Enabled  bool   // true to archive runs to MySQL
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings groups every output target.
type OutputSettings struct {
	File   FileOutputSettings // report file export settings
	SQLite SQLiteSettings     // SQLite archive settings
	MySQL  MySQLSettings      // MySQL archive settings
}

// Settings is the root configuration for the pipeline.
type Settings struct {
	Debug bool // true to enable debug logging

	Main      MainSettings
	Input     InputConfig
	Screening ScreeningSettings
	Analysis  AnalysisSettings
	Output    OutputSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration, creating a default config file on first run.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	initViper()

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	settingsInstance = settings
	return settings, nil
}

func initViper() {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	configPaths := configDirs()
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			createDefaultConfig(configPaths)
		} else {
			log.Printf("error reading config file: %v", err)
		}
	}
}

// configDirs returns the directories searched for config.yaml, most specific
// first.
func configDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "fermentation-meta"))
	}
	return dirs
}

// createDefaultConfig writes the embedded default config to the first
// writable config directory.
func createDefaultConfig(configPaths []string) {
	data, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		log.Printf("error reading embedded default config: %v", err)
		return
	}
	for _, dir := range configPaths {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			continue
		}
		if err := viper.ReadInConfig(); err != nil {
			log.Printf("error reading created config file: %v", err)
		}
		return
	}
	log.Printf("unable to create a default config file in any of %v", configPaths)
}

// Setting returns the loaded settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("error loading settings: %v", err)
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// SaveAs writes the current settings to the given YAML file.
func (s *Settings) SaveAs(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

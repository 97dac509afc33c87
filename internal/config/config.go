// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sheet backends
const (
	BackendCSV     = "csv"
	BackendSQLite  = "sqlite"
	BackendGSheets = "gsheets"
	BackendMemory  = "memory"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub      GitHubConfig
	Sheet       SheetConfig
	MaxPages    int
	HTTPTimeout time.Duration
	LogLevel    string
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token  string
	Domain string
	// ProjectIDs is the raw comma separated list of project node IDs or URLs
	ProjectIDs string
}

// SheetConfig selects and configures the sheet the rows are merged into.
type SheetConfig struct {
	Backend       string
	Output        string
	SpreadsheetID string
	Name          string
	Credentials   string
}

// ConfigurationError lists the required settings that are missing.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// flag name -> config key
var flagKeys = map[string]string{
	"backend":        "sheet.backend",
	"output":         "sheet.output",
	"spreadsheet-id": "sheet.spreadsheet_id",
	"sheet":          "sheet.name",
	"credentials":    "sheet.credentials",
	"max-pages":      "max_pages",
	"domain":         "github.domain",
	"projects":       "github.project_ids",
}

// Options control where Load reads settings from besides the environment.
type Options struct {
	// ConfigFile is an optional YAML/TOML/JSON config file
	ConfigFile string
	// EnvFile is loaded into the environment when it exists. Defaults to .env.
	EnvFile string
	// Flags overrides file and environment values for the flags that were set
	Flags *pflag.FlagSet
	// TokenOnly skips the checks of everything but the GitHub token
	TokenOnly bool
}

// LoadConfig loads configuration from flags, environment variables, an
// optional .env file and an optional config file, in that order of
// precedence, and validates it.
func LoadConfig(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("github.project_ids", "PROJECT_IDS")
	v.BindEnv("sheet.backend", "SHEET_BACKEND")
	v.BindEnv("sheet.output", "SHEET_OUTPUT")
	v.BindEnv("sheet.spreadsheet_id", "SHEET_SPREADSHEET_ID")
	v.BindEnv("sheet.name", "SHEET_NAME")
	v.BindEnv("sheet.credentials", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("max_pages", "MAX_PAGES")
	v.BindEnv("http_timeout", "HTTP_TIMEOUT")
	v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("sheet.backend", BackendCSV)
	v.SetDefault("sheet.name", "Sheet1")
	v.SetDefault("max_pages", 1000)
	v.SetDefault("http_timeout", 60*time.Second)
	v.SetDefault("log_level", "info")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	config := &Config{
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Domain:     v.GetString("github.domain"),
			ProjectIDs: v.GetString("github.project_ids"),
		},
		Sheet: SheetConfig{
			Backend:       strings.ToLower(v.GetString("sheet.backend")),
			Output:        v.GetString("sheet.output"),
			SpreadsheetID: v.GetString("sheet.spreadsheet_id"),
			Name:          v.GetString("sheet.name"),
			Credentials:   v.GetString("sheet.credentials"),
		},
		MaxPages:    v.GetInt("max_pages"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		LogLevel:    v.GetString("log_level"),
	}
	if config.GitHub.Domain == "" {
		config.GitHub.Domain = "github.com"
	}
	if config.Sheet.Output == "" {
		config.Sheet.Output = DefaultOutput(config.Sheet.Backend)
	}

	if opts.TokenOnly {
		if config.GitHub.Token == "" {
			return nil, &ConfigurationError{Missing: []string{"GITHUB_TOKEN"}}
		}
		return config, nil
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultOutput returns the default file of a file backed sheet backend
func DefaultOutput(backend string) string {
	switch backend {
	case BackendCSV:
		return "issues.csv"
	case BackendSQLite:
		return "issues.db"
	default:
		return ""
	}
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if strings.TrimSpace(config.GitHub.ProjectIDs) == "" {
		missingVars = append(missingVars, "PROJECT_IDS")
	}

	if len(missingVars) > 0 {
		return &ConfigurationError{Missing: missingVars}
	}

	return ValidateSheetConfig(config)
}

// ValidateSheetConfig validates the sheet backend settings.
func ValidateSheetConfig(config *Config) error {
	switch config.Sheet.Backend {
	case BackendCSV, BackendSQLite:
		if config.Sheet.Output == "" {
			return &ConfigurationError{Missing: []string{"SHEET_OUTPUT"}}
		}
	case BackendGSheets:
		if config.Sheet.SpreadsheetID == "" {
			return &ConfigurationError{Missing: []string{"SHEET_SPREADSHEET_ID"}}
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown sheet backend %q", config.Sheet.Backend)
	}

	if config.MaxPages < 0 {
		return fmt.Errorf("max pages must not be negative, got %d", config.MaxPages)
	}
	return nil
}

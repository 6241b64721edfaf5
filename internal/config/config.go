package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultFileName is the config file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "xlmerge.yaml"

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
	Dates   DatesConfig   `yaml:"dates" envconfig:"DATES"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes how source workbooks are read.
type InputConfig struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`

	// HeaderRow is the 1-based row holding the column headers.
	HeaderRow int `yaml:"header_row" envconfig:"HEADER_ROW" validate:"min=1"`
}

// ColumnsConfig assigns a role to every source column.
type ColumnsConfig struct {
	// Key columns form the composite grouping key, in order.
	Key []string `yaml:"key" envconfig:"KEY" validate:"min=1,dive,required"`

	// Detail columns are carried through per row. Empty means every
	// non-key header column is a detail column.
	Detail []string `yaml:"detail" envconfig:"DETAIL"`

	// Renames maps detail column names to their output headers.
	Renames map[string]string `yaml:"renames" envconfig:"RENAMES"`
}

// DatesConfig controls date column detection.
type DatesConfig struct {
	// Keywords mark a column as a date column when its header
	// contains any of them (case-sensitive substring match).
	Keywords []string `yaml:"keywords" envconfig:"KEYWORDS"`
}

// ExportConfig controls the output artifacts.
type ExportConfig struct {
	// JSONKeyDelimiter joins composite key parts into the keys of the
	// structured export.
	JSONKeyDelimiter string `yaml:"json_key_delimiter" envconfig:"JSON_KEY_DELIMITER" validate:"required"`

	// CSV enables the flattened CSV output alongside the workbook.
	CSV bool `yaml:"csv" envconfig:"CSV"`

	// IndexHeader overrides the header of the leading group-ordinal
	// column. Empty uses the writer default.
	IndexHeader string `yaml:"index_header" envconfig:"INDEX_HEADER"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the configuration used when neither file nor
// environment overrides a value.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			HeaderRow: 1,
		},
		Dates: DatesConfig{
			Keywords: []string{"日期", "时间", "Date", "Time"},
		},
		Export: ExportConfig{
			JSONKeyDelimiter: "_",
			CSV:              true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/xlmerge.log",
		},
	}
}

// Load builds the configuration in three layers: defaults, then the
// YAML file, then XLMERGE_* environment variables. An explicit path
// must exist; the default file is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; env and defaults carry it.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := envconfig.Process("XLMERGE", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural problems. Column
// role conflicts against an actual header are caught later, at
// processing time.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("config validation failed: logging.file_path required when logging.output is %q", c.Logging.Output)
	}
	return nil
}

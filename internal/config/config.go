package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/xingstat/domain"
)

// Defaults that are not report semantics
const (
	// DefaultDataPath is the dataset read when nothing else is configured
	DefaultDataPath = "brdrxingusc_dataset.csv"

	// DefaultSecondaryScale divides the secondary chart series for display
	DefaultSecondaryScale = 1000

	// DefaultChartImageFormat is used for exported chart images
	DefaultChartImageFormat = "svg"

	// DefaultLogLevel and DefaultLogFormat configure slog
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// EnvPrefix is prepended to every environment override, e.g. XINGSTAT_REPORT_WINDOW_SIZE
	EnvPrefix = "XINGSTAT"
)

// Config represents the main configuration structure
type Config struct {
	// Data locates the dataset
	Data DataConfig `mapstructure:"data" yaml:"data" toml:"data"`

	// Report holds the report parameters
	Report ReportConfig `mapstructure:"report" yaml:"report" toml:"report"`

	// Chart holds the chart roles and rendering options
	Chart ChartConfig `mapstructure:"chart" yaml:"chart" toml:"chart"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Logging configures diagnostics on stderr
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// DataConfig locates the dataset
type DataConfig struct {
	// Path is a file or a doublestar glob; the first match in lexical order wins
	Path string `mapstructure:"path" yaml:"path" toml:"path"`

	// Sheet selects the worksheet for .xlsx files; empty means the first sheet
	Sheet string `mapstructure:"sheet" yaml:"sheet" toml:"sheet"`
}

// ReportConfig holds the report parameters
type ReportConfig struct {
	WindowSize       int     `mapstructure:"window_size" yaml:"window_size" toml:"window_size"`
	ThresholdPercent float64 `mapstructure:"threshold_percent" yaml:"threshold_percent" toml:"threshold_percent"`

	// ListingCategory is the category shown by menu entry A
	ListingCategory string `mapstructure:"listing_category" yaml:"listing_category" toml:"listing_category"`
}

// ChartConfig holds chart roles by table position and rendering options
type ChartConfig struct {
	Numerator   int `mapstructure:"numerator" yaml:"numerator" toml:"numerator"`
	Denominator int `mapstructure:"denominator" yaml:"denominator" toml:"denominator"`
	Secondary   int `mapstructure:"secondary" yaml:"secondary" toml:"secondary"`

	// SecondaryScale divides the secondary series on the bar panel
	SecondaryScale int `mapstructure:"secondary_scale" yaml:"secondary_scale" toml:"secondary_scale"`

	// ImageFormat is svg or png
	ImageFormat string `mapstructure:"image_format" yaml:"image_format" toml:"image_format"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// Directory receives chart pages and exports
	Directory string `mapstructure:"directory" yaml:"directory" toml:"directory"`

	// NoOpen disables opening HTML output in a browser
	NoOpen bool `mapstructure:"no_open" yaml:"no_open" toml:"no_open"`

	// NoColor disables ANSI colors in text output
	NoColor bool `mapstructure:"no_color" yaml:"no_color" toml:"no_color"`

	// NoPause skips the "Press Enter to continue" prompt
	NoPause bool `mapstructure:"no_pause" yaml:"no_pause" toml:"no_pause"`
}

// LoggingConfig configures slog
type LoggingConfig struct {
	// Level is debug, info, warn or error
	Level string `mapstructure:"level" yaml:"level" toml:"level"`

	// Format is text or json
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: DefaultDataPath,
		},
		Report: ReportConfig{
			WindowSize:       domain.DefaultWindowSize,
			ThresholdPercent: domain.DefaultThresholdPercent,
			ListingCategory:  domain.DefaultListingCategory,
		},
		Chart: ChartConfig{
			Numerator:      domain.DefaultChartNumerator,
			Denominator:    domain.DefaultChartDenominator,
			Secondary:      domain.DefaultChartSecondary,
			SecondaryScale: DefaultSecondaryScale,
			ImageFormat:    DefaultChartImageFormat,
		},
		Output: OutputConfig{
			Format:    string(domain.OutputFormatText),
			Directory: filepath.Join(".xingstat", "reports"),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ChartRoles returns the configured chart positions
func (c *Config) ChartRoles() domain.ChartRoles {
	return domain.ChartRoles{
		Numerator:   c.Chart.Numerator,
		Denominator: c.Chart.Denominator,
		Secondary:   c.Chart.Secondary,
	}
}

// LoadConfig loads configuration from file or returns default config.
// Environment variables prefixed with XINGSTAT_ override file values.
func LoadConfig(configPath string) (*Config, error) {
	// If no config path specified, try to find default config files
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	return loadWithViper(DefaultConfig(), configPath)
}

// LoadConfigWithTarget resolves configuration for a run started in startDir.
// Priority: explicit configPath, then .xingstat.toml found walking up from
// startDir, then xingstat.yaml/.json in the working or home directory.
func LoadConfigWithTarget(configPath, startDir string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	if startDir == "" {
		startDir = "."
	}
	loader := NewTomlConfigLoader()
	if path, err := loader.FindConfigFile(startDir); err == nil {
		base, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return loadWithViper(base, "")
	}

	return LoadConfig("")
}

// loadWithViper layers an optional config file and the environment over base
func loadWithViper(base *Config, configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, base)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("data.path", c.Data.Path)
	v.SetDefault("data.sheet", c.Data.Sheet)

	v.SetDefault("report.window_size", c.Report.WindowSize)
	v.SetDefault("report.threshold_percent", c.Report.ThresholdPercent)
	v.SetDefault("report.listing_category", c.Report.ListingCategory)

	v.SetDefault("chart.numerator", c.Chart.Numerator)
	v.SetDefault("chart.denominator", c.Chart.Denominator)
	v.SetDefault("chart.secondary", c.Chart.Secondary)
	v.SetDefault("chart.secondary_scale", c.Chart.SecondaryScale)
	v.SetDefault("chart.image_format", c.Chart.ImageFormat)

	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.directory", c.Output.Directory)
	v.SetDefault("output.no_open", c.Output.NoOpen)
	v.SetDefault("output.no_color", c.Output.NoColor)
	v.SetDefault("output.no_pause", c.Output.NoPause)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
}

// findDefaultConfig looks for yaml/json configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		"xingstat.yaml",
		"xingstat.yml",
		".xingstat.yaml",
		".xingstat.yml",
		"xingstat.json",
		".xingstat.json",
	}

	// Check current directory first
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("data.path cannot be empty")
	}

	if c.Report.WindowSize < 1 {
		return fmt.Errorf("report.window_size must be >= 1, got %d", c.Report.WindowSize)
	}

	if c.Report.ThresholdPercent < 0 {
		return fmt.Errorf("report.threshold_percent must be >= 0, got %g", c.Report.ThresholdPercent)
	}

	if strings.TrimSpace(c.Report.ListingCategory) == "" {
		return fmt.Errorf("report.listing_category cannot be empty")
	}

	if err := c.validateChartConfig(); err != nil {
		return err
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging.level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging.format '%s', must be one of: text, json", c.Logging.Format)
	}

	return nil
}

// validateChartConfig validates chart roles and rendering options
func (c *Config) validateChartConfig() error {
	roles := map[string]int{
		"numerator":   c.Chart.Numerator,
		"denominator": c.Chart.Denominator,
		"secondary":   c.Chart.Secondary,
	}
	for name, pos := range roles {
		if pos < 0 {
			return fmt.Errorf("chart.%s must be >= 0, got %d", name, pos)
		}
	}

	if c.Chart.Numerator == c.Chart.Denominator {
		return fmt.Errorf("chart.numerator and chart.denominator must differ, both are %d", c.Chart.Numerator)
	}

	if c.Chart.SecondaryScale < 1 {
		return fmt.Errorf("chart.secondary_scale must be >= 1, got %d", c.Chart.SecondaryScale)
	}

	if c.Chart.ImageFormat != "svg" && c.Chart.ImageFormat != "png" {
		return fmt.Errorf("invalid chart.image_format '%s', must be one of: svg, png", c.Chart.ImageFormat)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/xingstat/domain"
)

// ConfigFileName is the dedicated configuration file looked up by TomlConfigLoader
const ConfigFileName = ".xingstat.toml"

// XingstatTomlConfig represents the structure of .xingstat.toml.
// Pointer fields distinguish "unset" from a zero value.
type XingstatTomlConfig struct {
	Data    TomlDataConfig    `toml:"data"`
	Report  TomlReportConfig  `toml:"report"`
	Chart   TomlChartConfig   `toml:"chart"`
	Output  TomlOutputConfig  `toml:"output"`
	Logging TomlLoggingConfig `toml:"logging"`
}

type TomlDataConfig struct {
	Path  string `toml:"path"`
	Sheet string `toml:"sheet"`
}

type TomlReportConfig struct {
	WindowSize       *int     `toml:"window_size"`
	ThresholdPercent *float64 `toml:"threshold_percent"`
	ListingCategory  string   `toml:"listing_category"`
}

type TomlChartConfig struct {
	Numerator      *int   `toml:"numerator"`
	Denominator    *int   `toml:"denominator"`
	Secondary      *int   `toml:"secondary"`
	SecondaryScale *int   `toml:"secondary_scale"`
	ImageFormat    string `toml:"image_format"`
}

type TomlOutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
	NoOpen    *bool  `toml:"no_open"`
	NoColor   *bool  `toml:"no_color"`
	NoPause   *bool  `toml:"no_pause"`
}

type TomlLoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// TomlConfigLoader handles .xingstat.toml discovery and parsing
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .xingstat.toml from startDir upwards and merges it into
// the defaults. Defaults are returned when no file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile parses one TOML file and merges it into the defaults
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read %s", path), err)
	}

	var tomlCfg XingstatTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse %s", path), err)
	}

	cfg := DefaultConfig()
	l.merge(cfg, &tomlCfg)

	// Relative data paths are relative to the config file, not the working directory
	if tomlCfg.Data.Path != "" && !filepath.IsAbs(cfg.Data.Path) {
		cfg.Data.Path = filepath.Join(filepath.Dir(path), cfg.Data.Path)
	}

	return cfg, nil
}

// FindConfigFile walks up the directory tree to find .xingstat.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// merge copies every set value of tomlCfg into cfg
func (l *TomlConfigLoader) merge(cfg *Config, tomlCfg *XingstatTomlConfig) {
	if tomlCfg.Data.Path != "" {
		cfg.Data.Path = tomlCfg.Data.Path
	}
	if tomlCfg.Data.Sheet != "" {
		cfg.Data.Sheet = tomlCfg.Data.Sheet
	}

	if tomlCfg.Report.WindowSize != nil {
		cfg.Report.WindowSize = *tomlCfg.Report.WindowSize
	}
	if tomlCfg.Report.ThresholdPercent != nil {
		cfg.Report.ThresholdPercent = *tomlCfg.Report.ThresholdPercent
	}
	if tomlCfg.Report.ListingCategory != "" {
		cfg.Report.ListingCategory = tomlCfg.Report.ListingCategory
	}

	if tomlCfg.Chart.Numerator != nil {
		cfg.Chart.Numerator = *tomlCfg.Chart.Numerator
	}
	if tomlCfg.Chart.Denominator != nil {
		cfg.Chart.Denominator = *tomlCfg.Chart.Denominator
	}
	if tomlCfg.Chart.Secondary != nil {
		cfg.Chart.Secondary = *tomlCfg.Chart.Secondary
	}
	if tomlCfg.Chart.SecondaryScale != nil {
		cfg.Chart.SecondaryScale = *tomlCfg.Chart.SecondaryScale
	}
	if tomlCfg.Chart.ImageFormat != "" {
		cfg.Chart.ImageFormat = tomlCfg.Chart.ImageFormat
	}

	if tomlCfg.Output.Format != "" {
		cfg.Output.Format = tomlCfg.Output.Format
	}
	if tomlCfg.Output.Directory != "" {
		cfg.Output.Directory = tomlCfg.Output.Directory
	}
	if tomlCfg.Output.NoOpen != nil {
		cfg.Output.NoOpen = *tomlCfg.Output.NoOpen
	}
	if tomlCfg.Output.NoColor != nil {
		cfg.Output.NoColor = *tomlCfg.Output.NoColor
	}
	if tomlCfg.Output.NoPause != nil {
		cfg.Output.NoPause = *tomlCfg.Output.NoPause
	}

	if tomlCfg.Logging.Level != "" {
		cfg.Logging.Level = tomlCfg.Logging.Level
	}
	if tomlCfg.Logging.Format != "" {
		cfg.Logging.Format = tomlCfg.Logging.Format
	}
}

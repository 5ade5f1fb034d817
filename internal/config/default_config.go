package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from DefaultConfig to keep a single source of truth.
type DefaultConfigValues struct {
	DataPath string

	WindowSize       int
	ThresholdPercent float64
	ListingCategory  string

	ChartNumerator   int
	ChartDenominator int
	ChartSecondary   int
	SecondaryScale   int
	ChartImageFormat string

	OutputFormat    string
	OutputDirectory string

	LogLevel  string
	LogFormat string
}

// newDefaultConfigValues creates a DefaultConfigValues populated from DefaultConfig
func newDefaultConfigValues() DefaultConfigValues {
	d := DefaultConfig()
	return DefaultConfigValues{
		DataPath:         d.Data.Path,
		WindowSize:       d.Report.WindowSize,
		ThresholdPercent: d.Report.ThresholdPercent,
		ListingCategory:  d.Report.ListingCategory,
		ChartNumerator:   d.Chart.Numerator,
		ChartDenominator: d.Chart.Denominator,
		ChartSecondary:   d.Chart.Secondary,
		SecondaryScale:   d.Chart.SecondaryScale,
		ChartImageFormat: d.Chart.ImageFormat,
		OutputFormat:     d.Output.Format,
		OutputDirectory:  d.Output.Directory,
		LogLevel:         d.Logging.Level,
		LogFormat:        d.Logging.Format,
	}
}

// GenerateDefaultConfigTOML renders the default config template
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config and returns the full Config struct
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var tomlCfg XingstatTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	loader := &TomlConfigLoader{}
	loader.merge(cfg, &tomlCfg)

	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTomlConfigLoader_NoFile(t *testing.T) {
	loader := NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Report.WindowSize != DefaultConfig().Report.WindowSize {
		t.Errorf("Expected defaults, got window size %d", cfg.Report.WindowSize)
	}
}

func TestTomlConfigLoader_Partial(t *testing.T) {
	tempDir := t.TempDir()
	configContent := `[chart]
numerator = 3
secondary_scale = 1

[output]
no_color = true
`
	if err := os.WriteFile(filepath.Join(tempDir, ".xingstat.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Chart.Numerator != 3 {
		t.Errorf("Expected numerator 3, got %d", cfg.Chart.Numerator)
	}
	if cfg.Chart.Denominator != 1 {
		t.Errorf("Expected default denominator 1, got %d", cfg.Chart.Denominator)
	}
	if cfg.Chart.SecondaryScale != 1 {
		t.Errorf("Expected secondary scale 1, got %d", cfg.Chart.SecondaryScale)
	}
	if !cfg.Output.NoColor {
		t.Error("Expected no_color to be set")
	}
	if cfg.Output.NoOpen {
		t.Error("Expected no_open to keep its default")
	}
}

func TestTomlConfigLoader_InvalidToml(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, ".xingstat.toml"), []byte("[report\nwindow_size = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTomlConfigLoader().LoadConfig(tempDir); err == nil {
		t.Error("Expected parse error")
	}
}

func TestDefaultConfigTemplateRoundTrip(t *testing.T) {
	rendered, err := GenerateDefaultConfigTOML()
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if rendered == "" {
		t.Fatal("Rendered template is empty")
	}

	cfg, err := LoadDefaultConfigFromTOML()
	if err != nil {
		t.Fatalf("Rendered template does not parse: %v", err)
	}

	want := DefaultConfig()
	if cfg.Report != want.Report {
		t.Errorf("Report section drifted: %+v vs %+v", cfg.Report, want.Report)
	}
	if cfg.Chart != want.Chart {
		t.Errorf("Chart section drifted: %+v vs %+v", cfg.Chart, want.Chart)
	}
	if cfg.Output != want.Output {
		t.Errorf("Output section drifted: %+v vs %+v", cfg.Output, want.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Rendered config is invalid: %v", err)
	}
}

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const datasetName = "brdrxingusc_dataset.csv"

// buildXingstatBinary builds cmd/xingstat into a temporary directory
func buildXingstatBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "xingstat")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/xingstat")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build xingstat binary: %v\n%s", err, out)
	}

	return binaryPath
}

// copyDataset places the bundled dataset under its default name in dir
func copyDataset(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", datasetName))
	if err != nil {
		t.Fatalf("Failed to read dataset: %v", err)
	}
	path := filepath.Join(dir, datasetName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to copy dataset: %v", err)
	}
	return path
}

// createTestConfigFile writes a .xingstat.toml in testDir that directs output
// to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".xingstat.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = %q\nno_open = true\n", outputDir)
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

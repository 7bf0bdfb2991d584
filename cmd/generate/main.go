package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-modular/internal/config"
	"github.com/rxtech-lab/argo-modular/mocks"
	"github.com/rxtech-lab/argo-modular/pkg/marketdata"
)

const (
	schemaName = "run-config.json"
	sampleName = "run-config.yaml"
	dataName   = "sample-bars.csv"
)

func main() {
	schemaPath := filepath.Join("./config", schemaName)
	sampleConfigPath := filepath.Join("./config", sampleName)
	sampleDataPath := filepath.Join("./data", dataName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		log.Fatalf("Invalid paths: %v", err)
	}

	if err := generateSchemaFile(schemaPath); err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	if err := generateSampleConfig(config.Default(), sampleConfigPath, schemaName); err != nil {
		log.Fatalf("Failed to generate sample config: %v", err)
	}

	if err := generateSampleData(sampleDataPath); err != nil {
		log.Fatalf("Failed to generate sample data: %v", err)
	}
}

// generateSchemaFile writes the JSON schema of the run configuration.
func generateSchemaFile(schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes cfg as YAML with a schema reference. An
// existing file is left untouched.
func generateSampleConfig(cfg config.RunConfig, samplePath string, schema string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(schema)), yamlBytes...)

	if err := os.MkdirAll(filepath.Dir(samplePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

// generateSampleData writes one synthetic trading day of minute bars. An
// existing file is left untouched.
func generateSampleData(dataPath string) error {
	if _, err := os.Stat(dataPath); err == nil {
		return nil
	}

	data := mocks.NewDataGenerator(1).Generate(mocks.DefaultConfig())

	var buf bytes.Buffer
	if err := marketdata.WriteCSV(&buf, data); err != nil {
		return fmt.Errorf("failed to encode sample data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(dataPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write sample data to file: %w", err)
	}

	log.Printf("Sample data successfully generated at %s", dataPath)

	return nil
}

func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

func getSchemaReference(schema string) string {
	return "# yaml-language-server: $schema=" + schema + "\n"
}

package appconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig is the JSON config file schema. Every field can also be set by
// CLI flag; explicit flags win over file values.
type FileConfig struct {
	MoviesPath   string `json:"movies"`
	CreditsPath  string `json:"credits"`
	ExternalPath string `json:"external"`
	Source       string `json:"source"`
	OutputPath   string `json:"output"`
	DBPath       string `json:"db_path"`
	Workers      int    `json:"workers"`
	MetricsBind  string `json:"metrics_bind"`
	Env          string `json:"env"`
	Verbose      bool   `json:"verbose"`
}

// LoadFromFile reads and validates a JSON config file, applying defaults
// for omitted fields.
func LoadFromFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &FileConfig{
		Source: "xbox",
		Env:    "development",
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c *FileConfig) validate() error {
	if c.MoviesPath == "" {
		return fmt.Errorf("movies dataset path is required")
	}
	if c.CreditsPath == "" {
		return fmt.Errorf("credits dataset path is required")
	}
	if c.ExternalPath == "" {
		return fmt.Errorf("external dataset path is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

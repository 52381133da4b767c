package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds tool defaults read from performous-tools.yml. Every field is
// optional; commands substitute built-in defaults for empty ones.
type Config struct {
	OutputDir        string   `yaml:"outputDir,omitempty"`
	ServeAddr        string   `yaml:"serveAddr,omitempty"`
	AllowedOrigins   []string `yaml:"allowedOrigins,omitempty"`
	MetadataEndpoint string   `yaml:"metadataEndpoint,omitempty"`
	MetadataTable    string   `yaml:"metadataTable,omitempty"`
}

// Load reads performous-tools.yml (or .yaml) from dir. A missing file is not
// an error, just a zero-value config.
func Load(dir string) (*Config, error) {
	for _, name := range []string{"performous-tools.yml", "performous-tools.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &Config{}, nil
}

package languages

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifestYAML is the YAML structure for a language manifest.
type manifestYAML struct {
	Languages []Language `yaml:"languages"`
}

// LoadFile loads a language manifest from a YAML file.
// Manifest order is significant: the first language is the default.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data)
}

// Parse parses language manifest YAML content into a Registry.
func Parse(data []byte) (*Registry, error) {
	var raw manifestYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(raw.Languages) == 0 {
		return nil, fmt.Errorf("manifest declares no languages")
	}

	return NewRegistry(raw.Languages...)
}

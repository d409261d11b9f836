package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is an optional on-disk description of a procedural scenario to
// generate, letting a scenario be named and versioned instead of passed as
// bare CLI flags.
type Manifest struct {
	Name    string `yaml:"name"`
	Seed    uint64 `yaml:"seed"`
	Systems int    `yaml:"systems"`
}

// LoadManifest reads and parses a scenario manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("scenario: parse manifest %s: %w", path, err)
	}
	if m.Systems < 1 {
		m.Systems = 1
	}
	return &m, nil
}

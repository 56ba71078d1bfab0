package preset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFromFile reads weight presets from a YAML file. Preset names must be
// unique and non-empty.
func LoadFromFile(file string) ([]Preset, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse decodes a preset document.
func Parse(content []byte) ([]Preset, error) {
	var doc presetFile
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(doc.Presets))
	for i := range doc.Presets {
		name := doc.Presets[i].Name
		if name == "" {
			return nil, errors.New("preset name must be specified")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate preset name '%s'", name)
		}
		seen[name] = true
	}
	return doc.Presets, nil
}
